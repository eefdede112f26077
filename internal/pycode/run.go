package pycode

import "unicode/utf8"

// Run records one dual-version creation: the original human-readable
// (HR) source, the compacted machine-run (MR) source that passed the
// syntax gate, the persisted artifact paths, and the sampled peak
// memory of executing the MR form once.
type Run struct {
	// ID is a ULID that uniquely identifies this run
	ID string `json:"id"`

	// ModuleName names the persisted artifacts (<module>_hr.py, <module>_mr.py)
	ModuleName string `json:"module_name"`

	// Fingerprint is the SHA-256 of the HR source
	Fingerprint string `json:"fingerprint"`

	// HRText is the original source, unmodified
	HRText string `json:"hr_text,omitempty"`

	// MRText is the compacted source
	MRText string `json:"mr_text,omitempty"`

	// HRChars and MRChars are character counts (runes, not bytes)
	HRChars int `json:"hr_chars"`
	MRChars int `json:"mr_chars"`

	// ReductionPct is the size reduction of MR relative to HR
	ReductionPct float64 `json:"reduction_pct"`

	// HRPath and MRPath are where the artifacts were written
	HRPath string `json:"hr_path"`
	MRPath string `json:"mr_path"`

	// MemoryUsageMB is the peak resident memory sampled while executing
	// the MR artifact once, in megabytes. 0 when rusage is unavailable.
	MemoryUsageMB float64 `json:"memory_usage_mb"`

	// CreatedAt is the Unix timestamp when the run was recorded
	CreatedAt int64 `json:"created_at"`
}

// RunSummary is the listing projection of a Run: everything but the
// source texts.
type RunSummary struct {
	ID            string  `json:"id"`
	ModuleName    string  `json:"module_name"`
	Fingerprint   string  `json:"fingerprint"`
	HRChars       int     `json:"hr_chars"`
	MRChars       int     `json:"mr_chars"`
	ReductionPct  float64 `json:"reduction_pct"`
	MemoryUsageMB float64 `json:"memory_usage_mb"`
	CreatedAt     int64   `json:"created_at"`
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// ReductionPercent computes how much smaller the MR form is than the HR
// form, as a percentage. Returns 0 for an empty HR source.
func ReductionPercent(hrChars, mrChars int) float64 {
	if hrChars == 0 {
		return 0
	}
	return float64(hrChars-mrChars) / float64(hrChars) * 100
}
