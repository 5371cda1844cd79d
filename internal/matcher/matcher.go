// Package matcher decides which quiz option a model reply refers to.
package matcher

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
	labelRe   = regexp.MustCompile(`^[A-Da-d]\.\s*`)
)

// Normalize lower-cases s, drops everything that is not an ASCII word
// character or whitespace and trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(nonWordRe.ReplaceAllString(strings.ToLower(s), ""))
}

// StripLabel removes a leading "A." to "D." label from a reply.
func StripLabel(reply string) string {
	return strings.TrimSpace(labelRe.ReplaceAllString(reply, ""))
}

// Label returns the display label of the option at index i ("A", "B", ...).
func Label(i int) string {
	return string(rune('A' + i))
}

// Match returns the index of the first option equal to the reply after
// normalization, with or without its leading label.
func Match(reply string, options []string) (int, bool) {
	matches := Matches(reply, options)
	if len(matches) == 0 {
		return -1, false
	}
	return matches[0], true
}

// Matches returns every option index that Match would accept, in input order.
func Matches(reply string, options []string) []int {
	full := Normalize(reply)
	stripped := Normalize(StripLabel(reply))

	return lo.FilterMap(options, func(option string, i int) (int, bool) {
		normalized := Normalize(option)
		return i, normalized == full || normalized == stripped
	})
}
