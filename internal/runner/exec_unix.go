//go:build !windows

package runner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/config"
)

// buildCommand prepares the measurement command. When a memory cap is
// configured, the interpreter runs under a shell that applies ulimit -v
// first; the kernel then enforces the cap on the whole run.
func buildCommand(ctx context.Context, cfg *config.Config, path string) *exec.Cmd {
	if cfg.ExecMaxMemoryMB > 0 {
		limitKB := cfg.ExecMaxMemoryMB * 1024
		script := fmt.Sprintf("ulimit -v %d; exec %s %s", limitKB, shellQuote(cfg.PythonBin), shellQuote(path))
		return exec.CommandContext(ctx, "/bin/sh", "-c", script)
	}
	return exec.CommandContext(ctx, cfg.PythonBin, path)
}

// shellQuote single-quotes s for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
