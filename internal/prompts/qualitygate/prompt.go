// Package qualitygate holds the LLM quality-gate prompt and the schema for
// its verdict JSON.
package qualitygate

import (
	_ "embed"

	"github.com/taabirhq/taabir/internal/prompts"
)

//go:embed user.tmpl
var userPrompt string

// PromptKey is the hierarchical key for this prompt.
const PromptKey = "stages.qualitygate.user"

// Input is the template data for the quality-gate prompt.
type Input struct {
	Text string
}

// Verdict is the parsed quality-gate result.
type Verdict struct {
	Pass     bool           `json:"pass"`
	Scores   map[string]int `json:"scores"`
	Problems []string       `json:"problems"`
}

// RegisterPrompts registers the quality-gate prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         PromptKey,
		Text:        userPrompt,
		Description: "Quality gate prompt - editorial scoring verdict as JSON",
	})
}
