package quality

import (
	"fmt"
	"regexp"
	"strings"
)

// headingWith reports whether text has a level-2 or level-3 heading whose
// title contains keyword.
func headingWith(text, keyword string) bool {
	pat := regexp.MustCompile(`(?m)^\s*#{2,3}\s*.*` + regexp.QuoteMeta(keyword) + `.*$`)
	return pat.MatchString(text)
}

func peopleFirstPresent(text string) bool {
	return headingWith(text, "الخلاصة")
}

func methodologyPresent(text string) bool {
	// The outline normalizer rewrites the منهجية التفسير variant to the
	// canonical form before drafts are generated, so one check suffices.
	return headingWith(text, "كيف نفسّر")
}

// casesPresent accepts either the cases heading or the paper/coin money
// pair in prose, which signals the cases were written inline.
func casesPresent(text string) bool {
	return headingWith(text, "الحالات المؤثرة") ||
		(strings.Contains(text, "ورقي") && strings.Contains(text, "معدني"))
}

func sourcesSectionPresent(text string) bool {
	return headingWith(text, "المصادر")
}

// Report is the aggregate heuristic quality report for a draft.
type Report struct {
	FillerCount      int         `json:"filler_count" yaml:"filler_count"`
	RepetitionRatio  float64     `json:"repetition_ratio" yaml:"repetition_ratio"`
	HasSensory       bool        `json:"has_sensory_language" yaml:"has_sensory_language"`
	FillerSamples    []string    `json:"filler_samples" yaml:"filler_samples"`
	HasPeopleFirst   bool        `json:"has_people_first" yaml:"has_people_first"`
	HasMethodology   bool        `json:"has_methodology" yaml:"has_methodology"`
	HasCasesSection  bool        `json:"has_cases_section" yaml:"has_cases_section"`
	HasSourceSection bool        `json:"has_sources_section" yaml:"has_sources_section"`
	Sources          SourceFlags `json:"sources" yaml:"sources"`
	SourceProblems   []string    `json:"source_problems" yaml:"source_problems"`
}

// maxFillerSamples caps how many filler hits the report echoes back.
const maxFillerSamples = 5

// Analyze runs every heuristic over text and returns the combined report.
func Analyze(text string) Report {
	fillers := FindFiller(text)
	samples := fillers
	if len(samples) > maxFillerSamples {
		samples = samples[:maxFillerSamples]
	}
	return Report{
		FillerCount:      len(fillers),
		RepetitionRatio:  RepetitionScore(text),
		HasSensory:       HasSensory(text),
		FillerSamples:    samples,
		HasPeopleFirst:   peopleFirstPresent(text),
		HasMethodology:   methodologyPresent(text),
		HasCasesSection:  casesPresent(text),
		HasSourceSection: sourcesSectionPresent(text),
		Sources:          CheckSources(text),
		SourceProblems:   SourceProblems(text),
	}
}

// FAQItem is one question/answer pair from the meta generation step.
type FAQItem struct {
	Question string `json:"q" yaml:"q"`
	Answer   string `json:"a" yaml:"a"`
}

// Minimum FAQ requirements from the editorial checklist.
const (
	minFAQItems       = 5
	minAnswerSentence = 3
)

var answerSplit = regexp.MustCompile(`[.!?؟؛]\s*`)

// CheckFAQ lists editorial problems with a FAQ set: fewer than five items,
// or answers shorter than three sentences. An empty slice means the FAQ
// passes.
func CheckFAQ(items []FAQItem) []string {
	var problems []string
	if len(items) < minFAQItems {
		problems = append(problems, fmt.Sprintf("FAQ أقل من %d أسئلة", minFAQItems))
	}
	for _, it := range items {
		if sentenceCount(it.Answer) < minAnswerSentence {
			problems = append(problems, fmt.Sprintf("الإجابة على '%s...' قصيرة (< %d جمل)", truncate(it.Question, 25), minAnswerSentence))
		}
	}
	return problems
}

func sentenceCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n := 0
	for _, p := range answerSplit.Split(text, -1) {
		if normalizeSentence(p) != "" {
			n++
		}
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
