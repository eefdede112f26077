package pycode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sync"
)

// Final compaction pass, applied after the line-oriented stages: it
// deliberately destroys the line structure the normalizer just built,
// trading indentation nesting for whatever delimiter structure the
// grammar still accepts.
var (
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
	punctuationRegex   = regexp.MustCompile(`\s*([{}:,()])\s*`)
)

// Fingerprint returns the content-addressed cache key for source:
// a hex-encoded SHA-256 of the raw bytes. Byte-identical sources always
// share a fingerprint.
func Fingerprint(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Optimizer runs the compaction pipeline (strip comments, normalize
// layout, collapse whitespace, validate) and memoizes results by source
// fingerprint. The cache is unbounded with no eviction; entries are
// immutable once written, so there is no invalidation path. Failed
// validations are cached too; identical bad input fails identically.
//
// Construct one Optimizer per session and inject it; the mutex makes
// GetOrCompute safe to share between the CLI, web, and MCP surfaces.
type Optimizer struct {
	mu       sync.Mutex
	gate     *Gate
	cache    map[string]Result
	computes int
}

// NewOptimizer creates an Optimizer with an empty cache.
func NewOptimizer() *Optimizer {
	return &Optimizer{
		gate:  NewGate(),
		cache: make(map[string]Result),
	}
}

// Optimize runs the pipeline and returns the compacted text.
// If the syntax gate rejects the result, it returns the gate's Result
// with Valid == false; a failed optimization has no output, only a
// reported reason. The second return reports a cache hit.
func (o *Optimizer) Optimize(ctx context.Context, source string) (Result, bool) {
	key := Fingerprint(source)

	o.mu.Lock()
	defer o.mu.Unlock()

	if res, ok := o.cache[key]; ok {
		return res, true
	}

	res := o.run(ctx, source)
	o.cache[key] = res
	o.computes++
	return res, false
}

// run executes the pipeline stages in order. Each stage is a pure
// function over the previous stage's output.
func (o *Optimizer) run(ctx context.Context, source string) Result {
	text := Strip(source)
	text = NormalizeLayout(text)
	text = whitespaceRunRegex.ReplaceAllString(text, " ")
	text = punctuationRegex.ReplaceAllString(text, "$1")
	return o.gate.Validate(ctx, text)
}

// Computes reports how many times the pipeline actually ran (cache
// misses). Used by tests to observe memoization.
func (o *Optimizer) Computes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.computes
}

// CacheSize reports the number of memoized results.
func (o *Optimizer) CacheSize() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.cache)
}
