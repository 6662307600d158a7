package text

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"smart single quotes", "it’s ‘fine’", "it's 'fine'"},
		{"smart double quotes", "“quoted” text", `"quoted" text`},
		{"collapses runs", "a  b\t c", "a b c"},
		{"newlines become spaces", "line one\nline two\r\nline three", "line one line two line three"},
		{"trims ends", "  padded  ", "padded"},
		{"whitespace only", " \n\t ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
