//go:build windows

package runner

import (
	"context"
	"os/exec"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/config"
)

// buildCommand prepares the measurement command. The memory cap is not
// enforced on Windows; the timeout still applies.
func buildCommand(ctx context.Context, cfg *config.Config, path string) *exec.Cmd {
	return exec.CommandContext(ctx, cfg.PythonBin, path)
}
