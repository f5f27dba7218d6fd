package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	flagExec     = flag.String("exec", DefaultConfig.Exec, "the tool under test")
	flagDir      = flag.String("dir", DefaultConfig.Dir, "directory holding the .in/.out fixtures")
	flagSuite    = flag.String("suite", DefaultConfig.Suite, "fixture suite: default, alt or discover")
	flagManifest = flag.String("manifest", "", "YAML manifest declaring exec, dir, timeout, cases and normalize rules")
	flagTimeout  = flag.Duration("timeout", DefaultConfig.Timeout, "per-case time limit, 0 waits forever")
	flagDiff     = flag.Bool("diff", DefaultConfig.Diff, "if true, appends a diff to every failure report")
	flagColor    = flag.String("color", DefaultConfig.Color, "colorize Passed/Failed: auto, always or never")
	flagFailExit = flag.Bool("fail-exit", DefaultConfig.FailExit, "if true, exits with status 1 when a case fails")
	flagVerbose  = flag.Bool("v", DefaultConfig.Verbose, "if true, logs every invocation to stderr")
)

func main() {
	os.Exit(dnstestsMain())
}

func dnstestsMain() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [fixture ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := run(ctx, cfg, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	if cfg.FailExit && !summary.AllPassed() {
		return 1
	}
	return 0
}

// buildConfig layers DefaultConfig, the environment, the manifest and the
// flags given on the command line, in that order.
func buildConfig() (*Config, error) {
	cfg := &Config{}
	*cfg = DefaultConfig

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if *flagManifest != "" {
		if err := applyManifest(cfg, *flagManifest); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "exec":
			cfg.Exec = *flagExec
		case "dir":
			cfg.Dir = *flagDir
		case "suite":
			cfg.Suite = *flagSuite
		case "timeout":
			cfg.Timeout = *flagTimeout
		}
	})
	if cfg.Timeout < 0 {
		return nil, errors.New("-timeout must not be negative")
	}
	cfg.Diff = *flagDiff
	cfg.Color = *flagColor
	cfg.FailExit = *flagFailExit
	cfg.Verbose = *flagVerbose
	return cfg, nil
}

// run loads every fixture, then runs and reports them one by one.
func run(ctx context.Context, cfg *Config, names []string) (Summary, error) {
	log := newLogger(os.Stderr, cfg.Verbose)

	fixtures, err := resolveFixtures(cfg)
	if err != nil {
		return Summary{}, err
	}
	fixtures, err = selectFixtures(fixtures, names)
	if err != nil {
		return Summary{}, err
	}

	pairs, err := loadSuite(fixtures)
	if err != nil {
		return Summary{}, err
	}

	norm, err := newNormalizer(cfg.Rules)
	if err != nil {
		return Summary{}, err
	}

	color, err := useColor(cfg.Color, os.Stdout)
	if err != nil {
		return Summary{}, err
	}
	rep, err := newReporter(os.Stdout, cfg.Exec, color, cfg.Diff)
	if err != nil {
		return Summary{}, err
	}

	log.Debug().
		Str("exec", cfg.Exec).
		Str("dir", cfg.Dir).
		Int("cases", len(pairs)).
		Dur("timeout", cfg.Timeout).
		Msg("starting run")

	r := newRunner(newExecInvoker(cfg.Exec, cfg.Timeout, log), norm, log)
	results, err := r.Run(ctx, pairs, rep.Case)
	if err != nil {
		return Summary{}, err
	}

	summary := summarize(results)
	if err := rep.Summary(summary); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
