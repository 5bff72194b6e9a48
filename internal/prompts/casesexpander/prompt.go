// Package casesexpander holds the prompt that fills the influential-cases
// section with scenario coverage.
package casesexpander

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.casesexpander.user"

// Input is the template data for the cases-expander prompt.
type Input struct {
	Article string
}

// RegisterPrompts registers the cases-expander prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Cases expander prompt - grows the influential-cases section scenario by scenario",
	})
}
