// Package analyzer locates and runs the external fault-detection script.
//
// Candidates are tried strictly in order. The first one that exits zero and
// prints something other than whitespace wins; every other outcome moves on
// to the next candidate. Each candidate runs at most once per call.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoAnalyzer is reported when every candidate failed.
var ErrNoAnalyzer = errors.New("no analyzer found or script failed")

// Outcome classifies a single candidate run.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeEmptyOutput Outcome = "empty_output"
	OutcomeExitError   Outcome = "exit_error"
	OutcomeSpawnError  Outcome = "spawn_error"
	OutcomeTimeout     Outcome = "timeout"
)

// Result is what a caller gets back from an invocation.
// On aggregate failure OK is false and Stderr holds the ErrNoAnalyzer text.
type Result struct {
	OK        bool
	Stdout    string
	Stderr    string
	Candidate Candidate
}

// Attempt records one candidate run.
type Attempt struct {
	Candidate Candidate
	Outcome   Outcome
	ExitCode  int
	Duration  time.Duration
	Stderr    string
	Err       error
}

// RunOutput is the buffered output of a finished process.
type RunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner spawns one process, waits for it and returns everything it printed.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (RunOutput, error)
}

// ExitError reports a process that started but exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// InvocationError carries every failed attempt of an invocation.
type InvocationError struct {
	Attempts []Attempt
}

func (e *InvocationError) Error() string {
	return ErrNoAnalyzer.Error()
}

func (e *InvocationError) Unwrap() error {
	return ErrNoAnalyzer
}

// Options tunes a single Invoke call.
type Options struct {
	// Timeout bounds each candidate run. Zero means no limit.
	Timeout time.Duration
	// OnAttempt, when set, is called after every candidate run.
	OnAttempt func(Attempt)
}

// Invoke runs script with args through each candidate until one succeeds.
func Invoke(ctx context.Context, runner Runner, candidates []Candidate, script string, args []string, opts Options) (Result, error) {
	attempts := make([]Attempt, 0, len(candidates))
	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		attempt, stdout := runCandidate(ctx, runner, c, script, args, opts.Timeout)
		attempts = append(attempts, attempt)
		if opts.OnAttempt != nil {
			opts.OnAttempt(attempt)
		}
		if attempt.Outcome == OutcomeOK {
			return Result{
				OK:        true,
				Stdout:    stdout,
				Stderr:    attempt.Stderr,
				Candidate: c,
			}, nil
		}
	}
	return Result{Stderr: ErrNoAnalyzer.Error()}, &InvocationError{Attempts: attempts}
}

func runCandidate(ctx context.Context, runner Runner, c Candidate, script string, args []string, timeout time.Duration) (Attempt, string) {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := runner.Run(runCtx, c.Command, c.argv(script, args))
	attempt := Attempt{
		Candidate: c,
		ExitCode:  out.ExitCode,
		Duration:  time.Since(start),
		Stderr:    out.Stderr,
		Err:       err,
	}

	var exitErr *ExitError
	switch {
	case err == nil && strings.TrimSpace(out.Stdout) != "":
		attempt.Outcome = OutcomeOK
	case err == nil:
		attempt.Outcome = OutcomeEmptyOutput
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded):
		attempt.Outcome = OutcomeTimeout
	case errors.As(err, &exitErr):
		attempt.Outcome = OutcomeExitError
	default:
		attempt.Outcome = OutcomeSpawnError
	}
	return attempt, out.Stdout
}

// Invoker binds a runner and a candidate list to one analyzer script.
type Invoker struct {
	Runner     Runner
	Candidates []Candidate
	Script     string
	Timeout    time.Duration
	OnAttempt  func(Attempt)
}

// Run invokes the script with the given extra arguments.
func (i *Invoker) Run(ctx context.Context, args ...string) (Result, error) {
	return Invoke(ctx, i.Runner, i.Candidates, i.Script, args, Options{
		Timeout:   i.Timeout,
		OnAttempt: i.OnAttempt,
	})
}
