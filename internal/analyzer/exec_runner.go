package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

const (
	defaultMaxOutputBytes = 1 << 20
	defaultWaitDelay      = 2 * time.Second
)

// ExecRunner runs processes on the host with os/exec.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// MaxOutputBytes caps each of stdout and stderr. Zero means 1 MiB.
	MaxOutputBytes int64
}

// NewExecRunner returns a runner rooted at dir.
func NewExecRunner(dir string, maxOutputBytes int64) *ExecRunner {
	return &ExecRunner{Dir: dir, MaxOutputBytes: maxOutputBytes}
}

// Run starts name with args and blocks until it exits.
// Pipes are released on every path: exec.Cmd.Run owns the copying goroutines
// and WaitDelay stops them waiting on grandchildren that keep the pipes open.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (RunOutput, error) {
	limit := r.MaxOutputBytes
	if limit <= 0 {
		limit = defaultMaxOutputBytes
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = defaultWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{w: &stdout, max: limit}
	cmd.Stderr = &limitedWriter{w: &stderr, max: limit}

	err := cmd.Run()
	out := RunOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("run %s: %w", name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &ExitError{Code: exitErr.ExitCode()}
	}
	out.ExitCode = -1
	return out, fmt.Errorf("start %s: %w", name, err)
}

// limitedWriter keeps the first max bytes and silently drops the rest so the
// child never sees a short write.
type limitedWriter struct {
	w       io.Writer
	max     int64
	written int64
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.written >= lw.max {
		return n, nil
	}
	remaining := lw.max - lw.written
	if int64(n) > remaining {
		written, err := lw.w.Write(p[:remaining])
		lw.written += int64(written)
		return n, err
	}
	written, err := lw.w.Write(p)
	lw.written += int64(written)
	return written, err
}
