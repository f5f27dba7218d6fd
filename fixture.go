package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("not valid UTF-8 text")

// LoadError is returned when a fixture file cannot be read.
type LoadError struct {
	Fixture string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fixture %s: cannot read %s: %v", e.Fixture, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FixturePair is a loaded fixture. Input holds the whitespace-delimited
// arguments for the tool, Expected the text that must appear in its output.
// Both are trimmed.
type FixturePair struct {
	Fixture  Fixture
	Input    string
	Expected string
}

// Args splits the input on whitespace. There is no quoting.
func (p FixturePair) Args() []string {
	return strings.Fields(p.Input)
}

// loadFixture reads both files of f.
func loadFixture(f Fixture) (FixturePair, error) {
	input, err := readText(f.Input)
	if err != nil {
		return FixturePair{}, &LoadError{Fixture: f.Name, Path: f.Input, Err: err}
	}

	expected, err := readText(f.Output)
	if err != nil {
		return FixturePair{}, &LoadError{Fixture: f.Name, Path: f.Output, Err: err}
	}

	return FixturePair{
		Fixture:  f,
		Input:    strings.TrimSpace(input),
		Expected: strings.TrimSpace(expected),
	}, nil
}

// readText reads a fixture as UTF-8 text with \r\n and \r turned into \n.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return normalizeNewlines(string(data)), nil
}

// loadSuite loads every fixture up front so that a missing file aborts the
// run before any case executes.
func loadSuite(fixtures []Fixture) ([]FixturePair, error) {
	pairs := make([]FixturePair, 0, len(fixtures))
	for _, f := range fixtures {
		pair, err := loadFixture(f)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
