// Package meta turns the meta/FAQ generation output into validated article
// metadata and assembles the JSON-LD graph (Article + FAQPage + Person)
// attached to published articles.
package meta

import (
	"encoding/json"
	"strings"

	"github.com/taabirhq/taabir/internal/quality"
)

// ParseWarning is surfaced when the model output cannot be parsed as the
// expected JSON document.
const ParseWarning = "تعذّر تحليل JSON تلقائيًا. يرجى المراجعة اليدوية للناتج."

// MetaFAQ is the meta/FAQ document produced by the generation step.
type MetaFAQ struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	FAQ         []quality.FAQItem `json:"faq"`

	// Warning and Raw are set when parsing the model output failed and the
	// raw text is preserved for manual review.
	Warning string `json:"_warning,omitempty"`
	Raw     string `json:"_raw,omitempty"`
}

// rawFAQItem accepts the q/a and question/answer key conventions models
// alternate between.
type rawFAQItem struct {
	Q        string `json:"q"`
	A        string `json:"a"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type rawMetaFAQ struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	FAQ         []rawFAQItem `json:"faq"`
}

// ParseMetaFAQ parses raw model output into a MetaFAQ. FAQ items are
// normalized to q/a form and items missing either field are dropped. When
// the output is not valid JSON, the result carries ParseWarning and the raw
// text instead of failing: a bad generation is reviewed, not retried here.
func ParseMetaFAQ(raw string) MetaFAQ {
	var parsed rawMetaFAQ
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return MetaFAQ{Warning: ParseWarning, Raw: raw}
	}

	out := MetaFAQ{Title: parsed.Title, Description: parsed.Description}
	for _, it := range parsed.FAQ {
		q := it.Q
		if q == "" {
			q = it.Question
		}
		a := it.A
		if a == "" {
			a = it.Answer
		}
		if q != "" && a != "" {
			out.FAQ = append(out.FAQ, quality.FAQItem{Question: q, Answer: a})
		}
	}
	return out
}

// Person identifies an article author or reviewer for E-E-A-T metadata.
type Person struct {
	Name        string `json:"name"`
	Credentials string `json:"credentials,omitempty"`
}

// BuildJSONLD assembles the schema.org graph for an article: an Article
// node with author/reviewedBy, and a FAQPage node when FAQ items exist.
// Empty fields are omitted rather than serialized as empty strings.
func BuildJSONLD(meta MetaFAQ, author, reviewer Person, lastUpdated string) map[string]any {
	article := map[string]any{"@type": "Article"}
	if t := strings.TrimSpace(meta.Title); t != "" {
		article["headline"] = t
	}
	if d := strings.TrimSpace(meta.Description); d != "" {
		article["description"] = d
	}
	if u := strings.TrimSpace(lastUpdated); u != "" {
		article["dateModified"] = u
	}
	if name := strings.TrimSpace(author.Name); name != "" {
		node := map[string]any{"@type": "Person", "name": name}
		if creds := strings.TrimSpace(author.Credentials); creds != "" {
			node["description"] = creds
		}
		article["author"] = node
	}
	if name := strings.TrimSpace(reviewer.Name); name != "" {
		article["reviewedBy"] = map[string]any{"@type": "Person", "name": name}
	}

	graph := []any{article}

	var faqEntities []any
	for _, it := range meta.FAQ {
		q := strings.TrimSpace(it.Question)
		a := strings.TrimSpace(it.Answer)
		if q == "" || a == "" {
			continue
		}
		faqEntities = append(faqEntities, map[string]any{
			"@type":          "Question",
			"name":           q,
			"acceptedAnswer": map[string]any{"@type": "Answer", "text": a},
		})
	}
	if len(faqEntities) > 0 {
		graph = append(graph, map[string]any{"@type": "FAQPage", "mainEntity": faqEntities})
	}

	return map[string]any{
		"@context": "https://schema.org",
		"@graph":   graph,
	}
}
