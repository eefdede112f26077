package pycode

import (
	"regexp"
	"strings"
)

// Block comment markers are removed over the whole text first, using the
// shortest match. This also removes genuine docstrings: the scrubber
// treats every triple-quoted span as a comment. That is a deliberate
// behavior, not a bug; modules that need a runtime-visible __doc__ must
// not be optimized.
var (
	doubleBlockRegex = regexp.MustCompile(`(?s)""".*?"""`)
	singleBlockRegex = regexp.MustCompile(`(?s)'''.*?'''`)
)

// Strip removes block and line comments from Python source.
// It is total: any input produces some output, though adversarial input
// (unbalanced triple quotes, escaped quotes before a #) can produce
// ill-formed text. The syntax gate downstream is the correctness backstop.
func Strip(source string) string {
	source = doubleBlockRegex.ReplaceAllString(source, "")
	source = singleBlockRegex.ReplaceAllString(source, "")

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		// An unresolved triple-quote marker means the spans were not
		// paired within the whole-text pass; leave the line alone.
		if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
			out = append(out, line)
			continue
		}
		out = append(out, stripLineComment(line))
	}
	return strings.Join(out, "\n")
}

// stripLineComment truncates line at the first # that is not inside a
// string literal. "Inside a string" is the odd-quote-count heuristic:
// if the count of either quote character left of the # is odd, the # is
// part of a string and kept. The heuristic counts raw quote characters;
// it does not track escapes or string prefixes.
func stripLineComment(line string) string {
	for pos := 0; pos < len(line); pos++ {
		if line[pos] != '#' {
			continue
		}
		left := line[:pos]
		if strings.Count(left, `"`)%2 == 0 && strings.Count(left, `'`)%2 == 0 {
			return left
		}
	}
	return line
}
