package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// LaunchError is returned when the tool cannot be started at all.
type LaunchError struct {
	Exe string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %s: %v", e.Exe, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Invocation is what one run of the tool produced.
type Invocation struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Invoker runs the tool under test with the given arguments.
type Invoker interface {
	Invoke(ctx context.Context, args []string) (Invocation, error)
}

// execInvoker starts exe as a child process for every call and waits for it.
// A zero timeout waits forever.
type execInvoker struct {
	exe     string
	timeout time.Duration
	log     zerolog.Logger
}

var _ Invoker = (*execInvoker)(nil)

func newExecInvoker(exe string, timeout time.Duration, log zerolog.Logger) *execInvoker {
	return &execInvoker{exe: exe, timeout: timeout, log: log}
}

// Invoke runs the tool and captures stdout and stderr separately. A non-zero
// exit status is reported in the Invocation, not as an error; only a failure
// to start the process is.
func (inv *execInvoker) Invoke(ctx context.Context, args []string) (Invocation, error) {
	runCtx := ctx
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, inv.exe, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Invocation{}, &LaunchError{Exe: inv.exe, Err: err}
	}
	err := cmd.Wait()
	result := Invocation{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		inv.log.Warn().
			Strs("args", args).
			Dur("timeout", inv.timeout).
			Msg("tool did not exit in time, killed")
		return result, nil
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		return result, fmt.Errorf("waiting for %s: %w", inv.exe, err)
	}

	inv.log.Debug().
		Str("exe", inv.exe).
		Strs("args", args).
		Int("exit_code", result.ExitCode).
		Int("stderr_bytes", len(result.Stderr)).
		Dur("took", result.Duration).
		Msg("tool finished")
	return result, nil
}
