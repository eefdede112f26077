package ops

import (
	"os"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/db"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID              string
	RemoveArtifacts bool // also delete the HR/MR files (best-effort)
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a run record, optionally with its artifacts.
func Delete(env *Env, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	run, err := db.GetRunByID(env.DB, input.ID)
	if err != nil {
		return nil, err
	}

	if err := db.DeleteRun(env.DB, run.ID); err != nil {
		return nil, err
	}

	if input.RemoveArtifacts {
		// Artifacts may have been moved or deleted by the user already.
		_ = os.Remove(run.HRPath)
		_ = os.Remove(run.MRPath)
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      run.ID,
	}, nil
}
