// Package humantouch holds the human-touch prompt: the final stylistic pass
// that loosens machine cadence in a draft.
package humantouch

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.humantouch.user"

// Input is the template data for the human-touch prompt.
type Input struct {
	Text string
}

// RegisterPrompts registers the human-touch prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Human touch prompt - varies sentence rhythm and softens machine cadence",
	})
}
