// Package quality scores article drafts with string and regex heuristics:
// filler phrases, sentence repetition, sensory language, required source
// citations and section presence. These are advisory signals surfaced to the
// writer; none of them block the pipeline.
package quality

import (
	"fmt"
	"regexp"
	"strings"
)

// fillerPhrases are stock Arabic filler expressions the house style bans.
var fillerPhrases = []string{
	"ومن الجدير بالذكر",
	"لا يخفى على أحد",
	"يجدر الإشارة",
	"وفي هذا السياق",
	"الجدير بالذكر",
	"كما أسلفنا الذكر",
	"كما ذكرنا سابقًا",
	"الجدير بالإشارة",
	"ومن ناحية أخرى",
	"بوجه عام",
}

// sensoryWords signal the light sensory register the style guide asks for.
var sensoryWords = []string{
	"بريق", "رهبة", "طمأنينة", "قشعريرة", "خفقان", "دفء", "برودة", "صدى",
	"نعومة", "وخز", "ارتجاف", "انقباض", "سكينة", "هدوء", "انشراح", "توتر",
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?؟؛\n]+`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// FindFiller returns the banned filler phrases present in text, in table
// order.
func FindFiller(text string) []string {
	var found []string
	for _, f := range fillerPhrases {
		if strings.Contains(text, f) {
			found = append(found, f)
		}
	}
	return found
}

// RepetitionScore returns the ratio of duplicated sentences to total
// sentences, rounded to three decimals. Sentences are normalized on
// whitespace before comparison. Empty input scores 0.
func RepetitionScore(text string) float64 {
	var sentences []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if n := normalizeSentence(s); n != "" {
			sentences = append(sentences, n)
		}
	}
	if len(sentences) == 0 {
		return 0
	}
	seen := make(map[string]int, len(sentences))
	for _, s := range sentences {
		seen[s]++
	}
	duplicates := 0
	for _, c := range seen {
		if c > 1 {
			duplicates += c - 1
		}
	}
	return round3(float64(duplicates) / float64(len(sentences)))
}

// HasSensory reports whether text contains any word from the sensory table.
func HasSensory(text string) bool {
	for _, w := range sensoryWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func normalizeSentence(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func round3(f float64) float64 {
	// Matches the report precision used elsewhere; good enough for a
	// heuristic ratio.
	return float64(int(f*1000+0.5)) / 1000
}

// Source citation patterns. Page references use ص or صفحة followed by a
// number; modern psychology references are "name (year)".
var (
	ibnSirinPage = regexp.MustCompile(`ابن\s*سيرين.*?(?:ص|صفحة)\s*\d+`)
	nabulsiPage  = regexp.MustCompile(`النابلسي.*?(?:ص|صفحة)\s*\d+`)
	psychRef     = regexp.MustCompile(`[\p{Arabic}A-Za-z]+\s*\(\s*\d{4}\s*\)`)
	psychYear    = regexp.MustCompile(`\(\s*20\d{2}\s*\)`)
)

// SourceFlags records which citation conventions a draft satisfies.
type SourceFlags struct {
	HasIbnSirinPage bool `json:"has_ibn_sirin_page" yaml:"has_ibn_sirin_page"`
	HasNabulsiPage  bool `json:"has_nabulsi_page" yaml:"has_nabulsi_page"`
	HasPsychRef     bool `json:"has_psych_ref" yaml:"has_psych_ref"`
}

// CheckSources returns citation presence flags for text.
func CheckSources(text string) SourceFlags {
	return SourceFlags{
		HasIbnSirinPage: ibnSirinPage.MatchString(text),
		HasNabulsiPage:  nabulsiPage.MatchString(text),
		HasPsychRef:     psychRef.MatchString(text),
	}
}

// requiredSources are the traditional references every article must cite.
var requiredSources = []string{"ابن سيرين", "النابلسي", "ابن شاهين"}

// SourceProblems lists, in Arabic, the explicit sourcing requirements text
// fails: missing traditional references, missing page numbers, or a missing
// modern psychology reference with a publication year.
func SourceProblems(text string) []string {
	var problems []string
	for _, src := range requiredSources {
		if !strings.Contains(text, src) {
			problems = append(problems, fmt.Sprintf("المصدر %s غير مذكور", src))
		}
	}
	if !strings.Contains(text, "ص") && !strings.Contains(text, "صفحة") {
		problems = append(problems, "لم تُذكر أرقام الصفحات من كتب التراث")
	}
	if !psychYear.MatchString(text) && !strings.Contains(text, "سنة") {
		problems = append(problems, "لا يوجد مرجع نفسي حديث بسنة نشر")
	}
	return problems
}
