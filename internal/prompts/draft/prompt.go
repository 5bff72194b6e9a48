// Package draft holds the draft-generation prompt that expands an enforced
// outline into a full article.
package draft

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.draft.user"

// Input is the template data for the draft prompt.
type Input struct {
	Outline         string
	PeopleFirst     string
	TargetWords     int
	IbnSirinEdition string
	IbnSirinPage    string
	NabulsiEdition  string
	NabulsiPage     string
	PsychRef        string
}

// RegisterPrompts registers the draft prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Draft generation prompt - expands the enforced outline into a full article",
	})
}
