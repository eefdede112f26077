package ops

import (
	"context"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

// OptimizeInput contains parameters for the Optimize operation.
type OptimizeInput struct {
	Source string // required
}

// OptimizeOutput contains the result of the Optimize operation.
type OptimizeOutput struct {
	MRText       string  `json:"mr_text"`
	Fingerprint  string  `json:"fingerprint"`
	HRChars      int     `json:"hr_chars"`
	MRChars      int     `json:"mr_chars"`
	ReductionPct float64 `json:"reduction_pct"`
	Cached       bool    `json:"cached"`
}

// Optimize compacts source through the pipeline. Pure: nothing is
// persisted and nothing is executed. A gate rejection surfaces as
// PARSE_ERROR with the parser's diagnostic; there is no partial output.
func Optimize(ctx context.Context, env *Env, input OptimizeInput) (*OptimizeOutput, error) {
	if input.Source == "" {
		return nil, errors.NewInvalidRequest("source is required")
	}

	res, cached := env.Opt.Optimize(ctx, input.Source)
	if !res.Valid {
		return nil, errors.NewParseError(res.Diagnostic, res.Line, res.Column)
	}

	hrChars := pycode.CountChars(input.Source)
	mrChars := pycode.CountChars(res.Text)

	return &OptimizeOutput{
		MRText:       res.Text,
		Fingerprint:  pycode.Fingerprint(input.Source),
		HRChars:      hrChars,
		MRChars:      mrChars,
		ReductionPct: pycode.ReductionPercent(hrChars, mrChars),
		Cached:       cached,
	}, nil
}
