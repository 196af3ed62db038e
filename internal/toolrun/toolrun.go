// Package toolrun invokes external diagnostic tools as subprocesses.
//
// Every probe receives a Runner instead of calling exec directly, so tests
// can substitute a scripted fake and the aggregator can bound the number of
// concurrent subprocesses in one place.
package toolrun

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"
)

// Runner invokes an external tool and returns its standard output.
type Runner interface {
	Output(ctx context.Context, tool string, args ...string) ([]byte, error)
}

// RunError describes a failed tool invocation.
type RunError struct {
	Tool    string
	Timeout bool
	Stderr  string
	Err     error
}

func (e *RunError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s timed out", e.Tool)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v, stderr: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ExecRunner runs tools as subprocesses. A weighted semaphore bounds the
// number of simultaneous invocations so a host with many drives does not
// fork an unbounded number of smartctl processes at once.
type ExecRunner struct {
	sem *semaphore.Weighted
}

// NewExecRunner creates an ExecRunner allowing up to maxConcurrent
// simultaneous subprocesses.
func NewExecRunner(maxConcurrent int64) *ExecRunner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ExecRunner{sem: semaphore.NewWeighted(maxConcurrent)}
}

// Output runs the tool and returns its stdout. The caller's context bounds
// the invocation; on expiry the subprocess receives SIGTERM, then SIGKILL
// after a grace period, and a RunError with Timeout set is returned.
func (r *ExecRunner) Output(ctx context.Context, tool string, args ...string) ([]byte, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, &RunError{Tool: tool, Timeout: true, Err: err}
	}
	defer r.sem.Release(1)

	start := time.Now()
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	slog.Debug("tool invoked",
		"tool", tool,
		"duration_ms", time.Since(start).Milliseconds(),
		"ok", err == nil,
	)

	if err != nil {
		if ctx.Err() != nil {
			return nil, &RunError{Tool: tool, Timeout: true, Err: ctx.Err()}
		}
		return nil, &RunError{Tool: tool, Stderr: truncate(stderr.String(), 1000), Err: err}
	}

	return stdout.Bytes(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
