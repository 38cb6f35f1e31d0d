package service

import "strings"

// Preprocess collapses all whitespace runs, including leading and trailing
// whitespace, into single spaces. Idempotent. Case is preserved: folding
// happens per-check downstream, since the question-mark check needs the
// original text.
func Preprocess(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
