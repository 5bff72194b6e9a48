// Package outline holds the outline-generation prompt. The generated text
// is then passed through the deterministic heading enforcement engine, so
// the prompt asks for the required structure but does not have to guarantee
// it.
package outline

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.outline.user"

// Input is the template data for the outline prompt.
type Input struct {
	Symbol          string
	PrimaryKW       string
	RelatedKWs      string
	IbnSirinEdition string
	IbnSirinPage    string
	NabulsiEdition  string
	NabulsiPage     string
	PsychRef        string
}

// RegisterPrompts registers the outline prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Outline generation prompt - markdown heading skeleton for one dream symbol",
	})
}
