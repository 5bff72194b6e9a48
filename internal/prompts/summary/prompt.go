// Package summary holds the people-first summary prompt: three direct lines
// that answer the reader before the article body starts.
package summary

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.summary.user"

// Input is the template data for the summary prompt.
type Input struct {
	Article string
}

// RegisterPrompts registers the summary prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "People-first summary prompt - three direct answer lines",
	})
}
