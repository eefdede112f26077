package db

import (
	"database/sql"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/pycode"
)

const runColumns = `id, module_name, fingerprint, hr_text, mr_text,
	hr_chars, mr_chars, reduction_pct, hr_path, mr_path,
	memory_usage_mb, created_at`

// InsertRun stores a new optimization run.
func InsertRun(db *sql.DB, r *pycode.Run) error {
	query := `
		INSERT INTO runs (
			id, module_name, fingerprint, hr_text, mr_text,
			hr_chars, mr_chars, reduction_pct, hr_path, mr_path,
			memory_usage_mb, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		r.ID, r.ModuleName, r.Fingerprint, r.HRText, r.MRText,
		r.HRChars, r.MRChars, r.ReductionPct, r.HRPath, r.MRPath,
		r.MemoryUsageMB, r.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetRunByID retrieves a run by its ULID.
func GetRunByID(db *sql.DB, id string) (*pycode.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	row := db.QueryRow(query, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// GetLatestRunByFingerprint retrieves the most recent run for a source
// fingerprint.
func GetLatestRunByFingerprint(db *sql.DB, fingerprint string) (*pycode.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs
		WHERE fingerprint = ?
		ORDER BY created_at DESC LIMIT 1`

	row := db.QueryRow(query, fingerprint)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(fingerprint)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// ListRuns returns run summaries, newest first, with the total count.
func ListRuns(db *sql.DB, limit, offset int) ([]pycode.RunSummary, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, module_name, fingerprint, hr_chars, mr_chars,
			reduction_pct, memory_usage_mb, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []pycode.RunSummary
	for rows.Next() {
		var s pycode.RunSummary
		if err := rows.Scan(
			&s.ID, &s.ModuleName, &s.Fingerprint, &s.HRChars, &s.MRChars,
			&s.ReductionPct, &s.MemoryUsageMB, &s.CreatedAt,
		); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// DeleteRun removes a run row. Returns NOT_FOUND if no row matched.
func DeleteRun(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// PurgeOlderThan removes runs recorded before the given Unix timestamp
// and returns how many were deleted.
func PurgeOlderThan(db *sql.DB, cutoff int64) (int, error) {
	result, err := db.Exec(`DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}

// scanRun scans a full run row.
func scanRun(row *sql.Row) (*pycode.Run, error) {
	var r pycode.Run
	err := row.Scan(
		&r.ID, &r.ModuleName, &r.Fingerprint, &r.HRText, &r.MRText,
		&r.HRChars, &r.MRChars, &r.ReductionPct, &r.HRPath, &r.MRPath,
		&r.MemoryUsageMB, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
