package ops

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/db"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

// DualVersionsInput contains parameters for the DualVersions operation.
type DualVersionsInput struct {
	Source     string // required
	ModuleName string // required, names the artifacts
}

// DualVersionsOutput contains the result of the DualVersions operation.
type DualVersionsOutput struct {
	RunID         string  `json:"run_id"`
	ModuleName    string  `json:"module_name"`
	Fingerprint   string  `json:"fingerprint"`
	HRPath        string  `json:"hr_path"`
	MRPath        string  `json:"mr_path"`
	HRChars       int     `json:"hr_chars"`
	MRChars       int     `json:"mr_chars"`
	ReductionPct  float64 `json:"reduction_pct"`
	MemoryUsageMB float64 `json:"memory_usage_mb"`
}

// DualVersions is the boundary operation: optimize source, persist the
// HR and MR artifacts, execute the MR form once to sample its peak
// memory, and record the run. Any failure aborts the whole call and
// removes artifacts already written; an invalid or unmeasured artifact
// is never left behind.
func DualVersions(ctx context.Context, env *Env, input DualVersionsInput) (*DualVersionsOutput, error) {
	moduleName, err := ValidateModuleName(input.ModuleName)
	if err != nil {
		return nil, err
	}

	optOut, err := Optimize(ctx, env, OptimizeInput{Source: input.Source})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(env.ArtifactDir, 0700); err != nil {
		return nil, errors.NewIOError(env.ArtifactDir, err)
	}

	hrPath := filepath.Join(env.ArtifactDir, moduleName+"_hr.py")
	mrPath := filepath.Join(env.ArtifactDir, moduleName+"_mr.py")

	if err := os.WriteFile(hrPath, []byte(input.Source), 0600); err != nil {
		return nil, errors.NewIOError(hrPath, err)
	}
	if err := os.WriteFile(mrPath, []byte(optOut.MRText), 0600); err != nil {
		_ = os.Remove(hrPath)
		return nil, errors.NewIOError(mrPath, err)
	}

	execResult, err := env.Exec.Execute(ctx, mrPath)
	if err != nil {
		_ = os.Remove(hrPath)
		_ = os.Remove(mrPath)
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		_ = os.Remove(hrPath)
		_ = os.Remove(mrPath)
		return nil, errors.NewInternal(err)
	}

	run := &pycode.Run{
		ID:            id,
		ModuleName:    moduleName,
		Fingerprint:   optOut.Fingerprint,
		HRText:        input.Source,
		MRText:        optOut.MRText,
		HRChars:       optOut.HRChars,
		MRChars:       optOut.MRChars,
		ReductionPct:  optOut.ReductionPct,
		HRPath:        hrPath,
		MRPath:        mrPath,
		MemoryUsageMB: execResult.MemoryUsageMB,
		CreatedAt:     time.Now().Unix(),
	}

	if err := db.InsertRun(env.DB, run); err != nil {
		_ = os.Remove(hrPath)
		_ = os.Remove(mrPath)
		return nil, err
	}

	return &DualVersionsOutput{
		RunID:         id,
		ModuleName:    moduleName,
		Fingerprint:   run.Fingerprint,
		HRPath:        hrPath,
		MRPath:        mrPath,
		HRChars:       run.HRChars,
		MRChars:       run.MRChars,
		ReductionPct:  run.ReductionPct,
		MemoryUsageMB: run.MemoryUsageMB,
	}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
