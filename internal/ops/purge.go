package ops

import (
	"fmt"
	"time"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/db"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	OlderThanDays *int // optional, only purge runs recorded more than N days ago
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// Purge permanently deletes old run records. With no age filter,
// every run is removed. Artifact files are left in place.
func Purge(env *Env, input PurgeInput) (*PurgeOutput, error) {
	// No age filter covers runs recorded up to and including this second.
	cutoff := time.Now().Unix() + 1
	if input.OlderThanDays != nil {
		cutoff = time.Now().Unix() - int64(*input.OlderThanDays)*86400
	}

	count, err := db.PurgeOlderThan(env.DB, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, input.OlderThanDays),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, olderThanDays *int) string {
	if count == 0 {
		return "No runs to purge"
	}

	runWord := "run"
	if count > 1 {
		runWord = "runs"
	}

	msg := fmt.Sprintf("Permanently deleted %d %s", count, runWord)

	if olderThanDays != nil {
		msg += fmt.Sprintf(" (recorded more than %d days ago)", *olderThanDays)
	}

	return msg
}
