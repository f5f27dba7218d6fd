package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"golang.org/x/term"
	"golang.org/x/tools/txtar"
)

// ANSI escape codes
const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

//go:embed report.txtar
var reportTemplates []byte

// reporter prints per-case lines and the final summary.
type reporter struct {
	w     io.Writer
	exe   string
	color bool
	diff  bool

	pass    *template.Template
	fail    *template.Template
	summary *template.Template
}

func newReporter(w io.Writer, exe string, color, diff bool) (*reporter, error) {
	r := &reporter{w: w, exe: exe, color: color, diff: diff}
	if err := r.loadTemplates(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reporter) loadTemplates() error {
	funcs := template.FuncMap{
		"paint": r.paint,
		"green": func() string { return ansiGreen },
		"red":   func() string { return ansiRed },
	}

	archive := txtar.Parse(reportTemplates)
	templates := make(map[string]string, len(archive.Files))
	for _, file := range archive.Files {
		templates[file.Name] = string(file.Data)
	}

	for name, dst := range map[string]**template.Template{
		"pass.tmpl":    &r.pass,
		"fail.tmpl":    &r.fail,
		"summary.tmpl": &r.summary,
	} {
		src, ok := templates[name]
		if !ok {
			return fmt.Errorf("report template %s not found", name)
		}
		tmpl, err := template.New(name).Funcs(funcs).Parse(src)
		if err != nil {
			return fmt.Errorf("failed to parse report template %s: %w", name, err)
		}
		*dst = tmpl
	}
	return nil
}

func (r *reporter) paint(s, code string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// Case prints the line (or block, on failure) for one result.
func (r *reporter) Case(res Result) error {
	if res.Passed {
		return r.pass.Execute(r.w, struct {
			Exe   string
			Input string
		}{r.exe, res.Pair.Input})
	}

	var diff string
	if r.diff {
		diff = expectedDiff(res.Pair.Expected, res.Output)
	}
	return r.fail.Execute(r.w, struct {
		Input    string
		Output   string
		Expected string
		Diff     string
	}{res.Pair.Input, res.Output, res.Pair.Expected, diff})
}

// Summary prints "<passed>/<total> tests passed".
func (r *reporter) Summary(s Summary) error {
	return r.summary.Execute(r.w, s)
}

// useColor resolves the -color mode against w.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
}

// isTerminal returns true if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
