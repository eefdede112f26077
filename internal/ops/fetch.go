package ops

import (
	"github.com/danielcamposramos/PyCodeOptimizer/internal/db"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

// FetchInput contains parameters for the Fetch operation.
// Exactly one of ID or Fingerprint must be set; Fingerprint fetches the
// most recent run for that source.
type FetchInput struct {
	ID          string
	Fingerprint string
	IncludeText *bool // default: true (nil means default)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	pycode.Run // embedded (copy, not pointer)
}

// Fetch retrieves a run by ID or source fingerprint.
func Fetch(env *Env, input FetchInput) (*FetchOutput, error) {
	hasID := input.ID != ""
	hasFingerprint := input.Fingerprint != ""

	if hasID == hasFingerprint {
		return nil, errors.NewInvalidRequest("must specify exactly one of id or fingerprint")
	}

	var r *pycode.Run
	var err error
	if hasID {
		r, err = db.GetRunByID(env.DB, input.ID)
	} else {
		r, err = db.GetLatestRunByFingerprint(env.DB, input.Fingerprint)
	}
	if err != nil {
		return nil, err
	}

	output := &FetchOutput{
		Run: *r, // copy, not pointer
	}

	includeText := true
	if input.IncludeText != nil {
		includeText = *input.IncludeText
	}
	if !includeText {
		output.HRText = ""
		output.MRText = ""
	}

	return output, nil
}
