// Package balance holds the balance-rewriter prompt that evens out
// traditional and modern-psychology viewpoints in a draft.
package balance

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.balance.user"

// Input is the template data for the balance prompt.
type Input struct {
	Text string
}

// RegisterPrompts registers the balance prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Balance rewriter prompt - evens traditional vs psychological framing",
	})
}
