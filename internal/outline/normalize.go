package outline

import "regexp"

// methodologyVariantLine matches a level-2 heading line whose title is the
// methodology variant. Only heading lines are rewritten; body prose that
// mentions the variant is left alone.
var methodologyVariantLine = regexp.MustCompile(`(?m)^(\s*##\s+)` + methodologyVariant + `\s*$`)

// NormalizeMethodologyHeading rewrites the methodology heading variant
// "منهجية التفسير" to its canonical form MethodologyHeading. Applying it to
// already-canonical text is a no-op, so the pass is idempotent.
func NormalizeMethodologyHeading(text string) string {
	return methodologyVariantLine.ReplaceAllString(text, "${1}"+MethodologyHeading)
}
