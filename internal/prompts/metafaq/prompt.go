// Package metafaq holds the meta/FAQ generation prompt and the JSON schema
// its structured output is validated against.
package metafaq

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.metafaq.user"

// Input is the template data for the meta/FAQ prompt.
type Input struct {
	Text      string
	PrimaryKW string
}

// RegisterPrompts registers the meta/FAQ prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Meta/FAQ prompt - SEO title, meta description and FAQ items as JSON",
	})
}
