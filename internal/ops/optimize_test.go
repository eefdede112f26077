package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
)

const sampleSource = "def f():\n    # doubles x\n    return x*2\n"

func TestOptimize(t *testing.T) {
	env, _ := testEnv(t)

	out, err := Optimize(context.Background(), env, OptimizeInput{Source: sampleSource})
	if err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}

	if out.MRText != "def f():return x*2" {
		t.Errorf("MRText = %q", out.MRText)
	}
	if strings.ContainsRune(out.MRText, '#') {
		t.Error("MRText still contains a comment")
	}
	if out.HRChars <= out.MRChars {
		t.Errorf("HRChars=%d MRChars=%d, expected a reduction", out.HRChars, out.MRChars)
	}
	if out.ReductionPct <= 0 {
		t.Errorf("ReductionPct = %v, want > 0", out.ReductionPct)
	}
	if out.Cached {
		t.Error("first optimization reported cached")
	}
	if len(out.Fingerprint) != 64 {
		t.Errorf("Fingerprint = %q, want 64 hex chars", out.Fingerprint)
	}
}

func TestOptimizeCached(t *testing.T) {
	env, _ := testEnv(t)
	ctx := context.Background()

	if _, err := Optimize(ctx, env, OptimizeInput{Source: sampleSource}); err != nil {
		t.Fatal(err)
	}

	out, err := Optimize(ctx, env, OptimizeInput{Source: sampleSource})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Cached {
		t.Error("second identical optimization not served from cache")
	}
	if env.Opt.Computes() != 1 {
		t.Errorf("pipeline ran %d times, want 1", env.Opt.Computes())
	}
}

func TestOptimizeEmptySource(t *testing.T) {
	env, _ := testEnv(t)

	_, err := Optimize(context.Background(), env, OptimizeInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Optimize(empty) error = %v, want INVALID_REQUEST", err)
	}
}

func TestOptimizeParseError(t *testing.T) {
	env, _ := testEnv(t)
	// Docstring-only body: scrubbing leaves a def header with no suite.
	source := "def f():\n    \"\"\"doc only\"\"\"\n"

	_, err := Optimize(context.Background(), env, OptimizeInput{Source: source})
	if !errors.Is(err, errors.ErrParseError) {
		t.Fatalf("Optimize() error = %v, want PARSE_ERROR", err)
	}

	oErr := err.(*errors.OptError)
	if oErr.Details["diagnostic"] == "" {
		t.Error("PARSE_ERROR carries no diagnostic")
	}
}
