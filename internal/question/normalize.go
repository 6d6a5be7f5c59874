package question

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswerText folds case and composes accents so answers compare the
// way a reader would compare them.
func NormalizeAnswerText(value string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(value)))
}

// EqualFold reports whether two answers are equal under NormalizeAnswerText.
func EqualFold(a, b string) bool {
	return NormalizeAnswerText(a) == NormalizeAnswerText(b)
}

// CleanPrompt joins wrapped lines, trims whitespace and drops trailing colons.
func CleanPrompt(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
	return strings.TrimSpace(strings.TrimRight(text, ":"))
}
