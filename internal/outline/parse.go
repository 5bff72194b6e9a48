// Package outline enforces the required heading structure on LLM-generated
// article outlines.
//
// Outlines arrive as loose markdown-like text; the only structure this
// package relies on is lines starting with "## " (section) or "### "
// (subsection). Every function here is a pure text transform: malformed or
// heading-less input is treated as body text, never as an error.
package outline

import "regexp"

var (
	h2Pattern = regexp.MustCompile(`(?m)^\s*##\s+(.+?)\s*$`)
	h3Pattern = regexp.MustCompile(`(?m)^\s*###\s+(.+?)\s*$`)
)

// ParseHeadings scans text and returns the level-2 and level-3 heading
// titles in document order. Titles are trimmed; duplicates are preserved.
// Levels other than 2 and 3 are ignored. Empty input yields empty slices.
func ParseHeadings(text string) (h2, h3 []string) {
	for _, m := range h2Pattern.FindAllStringSubmatch(text, -1) {
		h2 = append(h2, m[1])
	}
	for _, m := range h3Pattern.FindAllStringSubmatch(text, -1) {
		h3 = append(h3, m[1])
	}
	return h2, h3
}
