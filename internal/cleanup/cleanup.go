// Package cleanup strips rhetorical imagery from generated drafts before
// export. It rewrites simile sentences ("كأن") into pragmatic lines and
// replaces a fixed table of imagery clichés, then tidies whitespace.
package cleanup

import (
	"regexp"
	"strings"
)

// pragmaticRewrite replaces any sentence built around a simile.
const pragmaticRewrite = "قد يشير ذلك إلى انطباع أو قياس نفسي يرتبط بسياق الرائي"

// imageryReplacement maps one imagery cliché pattern to its pragmatic
// replacement.
type imageryReplacement struct {
	pattern *regexp.Regexp
	text    string
}

// replacements is the fixed imagery table. Order matters only for the
// report; the patterns do not overlap.
var replacements = []imageryReplacement{
	{regexp.MustCompile(`بريق\s*الأمل`), "قد يشير ذلك إلى عودة الحافز أو تحسّن المزاج"},
	{regexp.MustCompile(`ثقل\s*العالم`), "قد يدل على أعباء ومسؤوليات متراكمة"},
	{regexp.MustCompile(`غرق(?:ت)?\s*في\s*بحر\s*من\s*الأفكار`), "قد يعني اجترارًا فكريًا زائدًا"},
	{regexp.MustCompile(`جبل\s*من\s*الهموم`), "قد يدل على تراكم الضغوط"},
	{regexp.MustCompile(`سيول\s*من\s*المشاعر`), "قد يعكس فيضًا عاطفيًا صعب التنظيم"},
	{regexp.MustCompile(`ظلال\s*الخوف`), "قد يرمز إلى قلقٍ مستمر"},
}

var (
	// sentencePattern captures runs up to (and including) sentence-ending
	// punctuation, Arabic or Latin.
	sentencePattern = regexp.MustCompile(`[^.!?؟؛\n]+[.!?؟؛]?`)
	trailingSpaces  = regexp.MustCompile(`[ \t]+\n`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
)

// trailPunctuation are the marks preserved when a simile sentence is
// rewritten.
const trailPunctuation = ".!؟؛…"

// rewriteSimileSentence converts a sentence containing كأن into the
// pragmatic line, keeping its terminal punctuation.
func rewriteSimileSentence(sentence string) string {
	s := strings.TrimSpace(sentence)
	if s == "" {
		return s
	}
	trail := ""
	runes := []rune(s)
	if last := string(runes[len(runes)-1]); strings.Contains(trailPunctuation, last) {
		trail = last
	}
	return pragmaticRewrite + trail
}

// rewriteSimiles replaces every sentence containing كأن and returns the new
// text with the rewrite count. Text between sentences (newlines, heading
// markers) is copied through untouched so document structure survives.
func rewriteSimiles(text string) (string, int) {
	var sb strings.Builder
	n := 0
	prev := 0
	for _, loc := range sentencePattern.FindAllStringIndex(text, -1) {
		sb.WriteString(text[prev:loc[0]])
		sent := text[loc[0]:loc[1]]
		if strings.Contains(sent, "كأن") {
			sb.WriteString(rewriteSimileSentence(sent))
			n++
		} else {
			sb.WriteString(sent)
		}
		prev = loc[1]
	}
	sb.WriteString(text[prev:])
	return sb.String(), n
}

// tidy trims trailing spaces off lines and collapses blank-line runs.
func tidy(text string) string {
	text = trailingSpaces.ReplaceAllString(text, "\n")
	return blankRuns.ReplaceAllString(text, "\n\n")
}

// RemoveFillerPhrases rewrites simile sentences, applies the imagery
// replacement table and tidies whitespace.
func RemoveFillerPhrases(text string) string {
	out, _ := rewriteSimiles(text)
	for _, r := range replacements {
		out = r.pattern.ReplaceAllString(out, r.text)
	}
	return tidy(out)
}

// RemoveWithReport is RemoveFillerPhrases plus a count per applied rewrite,
// keyed by the pattern source (and "kaanna_sentences_rewritten" for simile
// rewrites).
func RemoveWithReport(text string) (string, map[string]int) {
	report := make(map[string]int)
	out, n := rewriteSimiles(text)
	if n > 0 {
		report["kaanna_sentences_rewritten"] = n
	}
	for _, r := range replacements {
		matches := r.pattern.FindAllStringIndex(out, -1)
		if len(matches) > 0 {
			report[r.pattern.String()] = len(matches)
			out = r.pattern.ReplaceAllString(out, r.text)
		}
	}
	return tidy(out), report
}
