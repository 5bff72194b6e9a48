// Package review holds the review/improve prompt applied to drafts.
package review

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.review.user"

// Input is the template data for the review prompt.
type Input struct {
	Text string
}

// RegisterPrompts registers the review prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Review prompt - tightens a draft without touching structure or citations",
	})
}
