package ops

import (
	"github.com/danielcamposramos/PyCodeOptimizer/internal/db"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []pycode.RunSummary `json:"items"`
	Pagination Pagination          `json:"pagination"`
	Sort       string              `json:"sort"`
}

// List retrieves run summaries with pagination, newest first.
func List(env *Env, input ListInput) (*ListOutput, error) {
	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	summaries, total, err := db.ListRuns(env.DB, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []pycode.RunSummary{}
	}

	hasMore := offset+len(summaries) < total

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
