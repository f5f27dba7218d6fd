package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Result is the outcome of one fixture. Output is the normalized stdout of
// the tool; Stderr and ExitCode are kept for diagnostics only.
type Result struct {
	Pair     FixturePair
	Passed   bool
	Output   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Summary counts passed cases out of all declared cases.
type Summary struct {
	Passed int
	Total  int
}

// AllPassed reports whether every case passed.
func (s Summary) AllPassed() bool {
	return s.Passed == s.Total
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		}
	}
	return s
}

type runner struct {
	invoker   Invoker
	normalize normalizer
	log       zerolog.Logger
}

func newRunner(invoker Invoker, normalize normalizer, log zerolog.Logger) *runner {
	return &runner{invoker: invoker, normalize: normalize, log: log}
}

// runCase invokes the tool once for pair and checks its normalized output.
// The returned error is fatal for the whole run.
func (r *runner) runCase(ctx context.Context, pair FixturePair) (Result, error) {
	inv, err := r.invoker.Invoke(ctx, pair.Args())
	if err != nil {
		return Result{}, err
	}

	output := r.normalize.apply(normalizeNewlines(inv.Stdout))
	result := Result{
		Pair:     pair,
		Output:   output,
		Stderr:   inv.Stderr,
		ExitCode: inv.ExitCode,
		TimedOut: inv.TimedOut,
		Duration: inv.Duration,
	}
	result.Passed = !inv.TimedOut && containsExpected(output, pair.Expected)
	return result, nil
}

// Run executes pairs one at a time in order. report, if not nil, is called
// as soon as each case finishes. On a fatal error the results gathered so
// far are returned with it.
func (r *runner) Run(ctx context.Context, pairs []FixturePair, report func(Result) error) ([]Result, error) {
	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		result, err := r.runCase(ctx, pair)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		r.log.Debug().
			Str("fixture", pair.Fixture.Name).
			Bool("passed", result.Passed).
			Msg("case done")

		if report != nil {
			if err := report(result); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}
