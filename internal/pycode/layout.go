package pycode

import "strings"

// IndentUnit is the fixed indent width used when re-deriving layout.
const IndentUnit = 4

// blockOpeners are the lexemes that introduce an indented sub-block.
// Matched as prefixes of the stripped line, so compound headers like
// "if x: y" still count as openers.
var blockOpeners = []string{
	"def ", "class ", "if ", "elif ", "else:",
	"try:", "except ", "finally:", "with ", "while ", "for ",
}

// NormalizeLayout re-derives indentation from a single running level
// counter instead of trusting the input's whitespace. Empty lines are
// dropped; a block-opener line is emitted at the current level and then
// increases it; a bare "pass" decreases the level and is emitted at the
// decreased depth; everything else is emitted at the current level.
//
// There is no dedent signal other than "pass": a block that ends without
// one keeps its indentation for the lines that follow. That gap is part
// of the heuristic; the syntax gate rejects any output it breaks.
func NormalizeLayout(text string) string {
	var lines []string
	level := 0
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		switch {
		case opensBlock(stripped):
			lines = append(lines, indent(level)+stripped)
			level += IndentUnit
		case stripped == "pass":
			level -= IndentUnit
			lines = append(lines, indent(level)+stripped)
		default:
			lines = append(lines, indent(level)+stripped)
		}
	}
	return strings.Join(lines, "\n")
}

func opensBlock(stripped string) bool {
	for _, kw := range blockOpeners {
		if strings.HasPrefix(stripped, kw) {
			return true
		}
	}
	return false
}

// indent clamps at zero: excess "pass" lines may drive the level
// negative, which renders as no indentation.
func indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level)
}
