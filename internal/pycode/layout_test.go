package pycode

import "testing"

func TestNormalizeLayout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "function body indented one unit",
			input: "def f():\nreturn 1",
			want:  "def f():\n    return 1",
		},
		{
			name:  "input indentation is not trusted",
			input: "def f():\n            return 1",
			want:  "def f():\n    return 1",
		},
		{
			name:  "empty lines dropped",
			input: "x = 1\n\n\ny = 2",
			want:  "x = 1\ny = 2",
		},
		{
			name:  "pass closes the block at the outer level",
			input: "def f():\nreturn 1\npass\nx = 1",
			want:  "def f():\n    return 1\npass\nx = 1",
		},
		{
			name:  "nested blocks closed by stacked pass lines",
			input: "class C:\ndef m(self):\nreturn 1\npass\npass\ny = 1",
			want:  "class C:\n    def m(self):\n        return 1\n    pass\npass\ny = 1",
		},
		{
			name:  "else and elif open blocks",
			input: "if a:\nx = 1\nelse:\ny = 2",
			want:  "if a:\n    x = 1\n    else:\n        y = 2",
		},
		{
			name:  "no dedent without pass",
			input: "def f():\nreturn 1\nx = 2",
			want:  "def f():\n    return 1\n    x = 2",
		},
		{
			name:  "excess pass clamps rendering at column zero",
			input: "pass\npass\nx = 1",
			want:  "pass\npass\nx = 1",
		},
		{
			name:  "identifier starting with keyword is not an opener",
			input: "iffy = 1\npassport = 2",
			want:  "iffy = 1\npassport = 2",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLayout(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeLayout(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
