package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Fixture names one test case and the two files that describe it.
//
// Input and Output are resolved paths; a Fixture is never paired with
// another by list position.
type Fixture struct {
	Name   string
	Input  string
	Output string
}

// builtinSuites holds the fixture names of the known configurations.
// "default" is the full list, "alt" the x* subset used by the second script.
var builtinSuites = map[string][]string{
	"default": {"1", "2", "3", "6", "er1", "er2", "er3", "x1", "x2", "x3", "x4"},
	"alt":     {"x1", "x2", "x3", "x4"},
}

const suiteDiscover = "discover"

// fixturesFor builds Fixture records for names found in dir using the
// <name>.in / <name>.out convention.
func fixturesFor(dir string, names []string) []Fixture {
	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		fixtures = append(fixtures, Fixture{
			Name:   name,
			Input:  filepath.Join(dir, name+".in"),
			Output: filepath.Join(dir, name+".out"),
		})
	}
	return fixtures
}

// discoverFixtures returns a Fixture for every *.in file in dir, sorted by
// name. The matching .out file is not checked here; a missing one surfaces
// as a load error before anything runs.
func discoverFixtures(dir string) ([]Fixture, error) {
	inputs, err := filepath.Glob(filepath.Join(dir, "*.in"))
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures in %s: %w", dir, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no *.in fixtures found in %s", dir)
	}

	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		names = append(names, strings.TrimSuffix(filepath.Base(in), ".in"))
	}
	sort.Strings(names)
	return fixturesFor(dir, names), nil
}

// resolveFixtures picks the fixture list for cfg: explicit manifest cases
// first, then the named suite.
func resolveFixtures(cfg *Config) ([]Fixture, error) {
	if len(cfg.Cases) > 0 {
		return manifestFixtures(cfg.Dir, cfg.Cases)
	}

	if cfg.Suite == suiteDiscover {
		return discoverFixtures(cfg.Dir)
	}

	names, ok := builtinSuites[cfg.Suite]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q", cfg.Suite)
	}
	return fixturesFor(cfg.Dir, names), nil
}

// manifestFixtures turns manifest cases into fixtures. Relative paths are
// resolved against dir and omitted paths default to <name>.in / <name>.out.
func manifestFixtures(dir string, cases []CaseConfig) ([]Fixture, error) {
	seen := make(map[string]bool, len(cases))
	fixtures := make([]Fixture, 0, len(cases))
	for i, c := range cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case %d: missing name", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("case %q declared more than once", c.Name)
		}
		seen[c.Name] = true

		input, output := c.Input, c.Output
		if input == "" {
			input = c.Name + ".in"
		}
		if output == "" {
			output = c.Name + ".out"
		}
		fixtures = append(fixtures, Fixture{
			Name:   c.Name,
			Input:  resolvePath(dir, input),
			Output: resolvePath(dir, output),
		})
	}
	return fixtures, nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// selectFixtures keeps only the fixtures whose names are listed, in
// declaration order. An empty selection keeps everything.
func selectFixtures(fixtures []Fixture, names []string) ([]Fixture, error) {
	if len(names) == 0 {
		return fixtures, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	selected := make([]Fixture, 0, len(names))
	for _, f := range fixtures {
		if wanted[f.Name] {
			selected = append(selected, f)
			delete(wanted, f.Name)
		}
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for name := range wanted {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("unknown fixture(s): %s", strings.Join(missing, ", "))
	}
	return selected, nil
}
