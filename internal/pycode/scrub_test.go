package pycode

import (
	"strings"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing comment removed",
			input: "x = 1  # set x",
			want:  "x = 1  ",
		},
		{
			name:  "hash inside string preserved, trailing comment removed",
			input: "x = 1  # set x\ny = \"a#b\"  # keep",
			want:  "x = 1  \ny = \"a#b\"  ",
		},
		{
			name:  "hash inside single-quoted string",
			input: "y = 'a#b'  # gone",
			want:  "y = 'a#b'  ",
		},
		{
			name:  "full-line comment leaves blank remnant",
			input: "# header\nx = 1",
			want:  "\nx = 1",
		},
		{
			name:  "double-quoted block comment removed",
			input: "\"\"\"module doc\"\"\"\nx = 1",
			want:  "\nx = 1",
		},
		{
			name:  "single-quoted block comment removed",
			input: "'''module doc'''\nx = 1",
			want:  "\nx = 1",
		},
		{
			name:  "shortest match between block markers",
			input: "\"\"\"a\"\"\" x \"\"\"b\"\"\"",
			want:  " x ",
		},
		{
			name:  "multi-line block comment removed",
			input: "def f():\n    \"\"\"doc\n    spanning lines\n    \"\"\"\n    return 1",
			want:  "def f():\n    \n    return 1",
		},
		{
			name:  "unresolved triple quote passes line through",
			input: "s = \"\"\"unterminated\n# stripped on the next line",
			want:  "s = \"\"\"unterminated\n",
		},
		{
			name:  "no comments unchanged",
			input: "def f(a, b):\n    return a + b",
			want:  "def f(a, b):\n    return a + b",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.input)
			if got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Stripping already-scrubbed text is a no-op: no residual markers remain.
func TestStripIdempotent(t *testing.T) {
	inputs := []string{
		"x = 1  # set x\ny = \"a#b\"  # keep",
		"\"\"\"doc\"\"\"\ndef f():\n    # body\n    return 1",
		"'''doc'''\nz = 'a#b'",
	}
	for _, input := range inputs {
		once := Strip(input)
		twice := Strip(once)
		if once != twice {
			t.Errorf("Strip not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestStripKeepsLineStructure(t *testing.T) {
	input := "a = 1  # one\nb = 2  # two\nc = 3"
	got := Strip(input)
	if n := strings.Count(got, "\n"); n != 2 {
		t.Errorf("Strip changed line count: got %d newlines, want 2 (%q)", n, got)
	}
}
