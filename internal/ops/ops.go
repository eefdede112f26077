package ops

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/config"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/runner"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Executor runs a persisted MR artifact and samples its memory.
// Satisfied by *runner.Runner; tests substitute a stub so they do not
// need a Python interpreter.
type Executor interface {
	Execute(ctx context.Context, path string) (*runner.Result, error)
}

// Env bundles the long-lived collaborators operations need: the run
// store, configuration, the session's optimizer (owner of the artifact
// cache), the measurement executor, and the artifact directory.
// Constructed once in main and shared by the CLI, web, and MCP surfaces.
type Env struct {
	DB          *sql.DB
	Cfg         *config.Config
	Opt         *pycode.Optimizer
	Exec        Executor
	ArtifactDir string
}

// moduleNameRegex permits portable file-name-safe module identifiers.
var moduleNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateModuleName validates and trims the module identifier used to
// name persisted artifacts. Path separators are rejected so artifacts
// cannot escape the artifact directory.
func ValidateModuleName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewInvalidRequest("module_name is required")
	}
	if !moduleNameRegex.MatchString(name) {
		return "", errors.NewInvalidRequest("module_name must start with a letter or underscore and contain only letters, digits, '_', '.', '-'")
	}
	return name, nil
}
