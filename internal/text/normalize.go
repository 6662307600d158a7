// Package text prepares practice texts: normalization and word-list assembly.
package text

import "strings"

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Normalize folds smart quotes to ASCII, collapses whitespace runs
// (including newlines) to single spaces, and trims the ends.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := quoteReplacer.Replace(raw)
	return strings.Join(strings.Fields(s), " ")
}
