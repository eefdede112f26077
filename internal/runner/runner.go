// Package runner executes compacted code with the configured Python
// interpreter under a wall-clock timeout and an address-space cap, and
// samples peak resident memory from the child's rusage. It is the one
// collaborator that performs blocking, unbounded work; the core
// pipeline never touches it.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/config"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

// stderrTailBytes bounds how much stderr is attached to an ExecutionFault.
const stderrTailBytes = 2000

// Result holds the outcome of one sandboxed execution.
type Result struct {
	// MemoryUsageMB is the child's peak resident set size in megabytes.
	// 0 when the platform does not expose rusage.
	MemoryUsageMB float64 `json:"memory_usage_mb"`

	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Duration time.Duration `json:"duration_ns"`
}

// Runner executes Python files per the configured sandbox policy.
type Runner struct {
	cfg *config.Config
}

// New creates a Runner.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Execute runs the Python file at path once and samples its peak memory.
// A non-zero exit, a start failure, or hitting the timeout all produce
// an EXECUTION_FAULT; the runner never tries to recover the semantics
// of faulty generated code, it only reports that the run failed.
func (r *Runner) Execute(ctx context.Context, path string) (*Result, error) {
	timeout := time.Duration(r.cfg.ExecTimeoutSecs) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := buildCommand(ctx, r.cfg, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return nil, errors.NewExecutionFault(-1, fmt.Sprintf("timed out after %s", timeout))
	}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, errors.NewExecutionFault(exitCode, tail(stderr.String(), stderrTailBytes))
	}

	return &Result{
		MemoryUsageMB: peakRSSMegabytes(cmd.ProcessState),
		Stdout:        stdout.String(),
		Stderr:        stderr.String(),
		Duration:      duration,
	}, nil
}

// OptimizeAndRun is the load-hook composition: optimize source, then
// execute the compacted form in place of the original. The compacted
// text goes through a temp file that is removed afterwards.
func (r *Runner) OptimizeAndRun(ctx context.Context, opt *pycode.Optimizer, source string) (*Result, error) {
	res, _ := opt.Optimize(ctx, source)
	if !res.Valid {
		return nil, errors.NewParseError(res.Diagnostic, res.Line, res.Column)
	}

	tmp, err := os.CreateTemp("", "pyopt-*.py")
	if err != nil {
		return nil, errors.NewIOError("temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(res.Text); err != nil {
		tmp.Close()
		return nil, errors.NewIOError(tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.NewIOError(tmp.Name(), err)
	}

	return r.Execute(ctx, tmp.Name())
}

// tail returns the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
