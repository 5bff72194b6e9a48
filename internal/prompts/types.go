// Package prompts provides prompt management for the article pipeline.
//
// Embedded .tmpl files in the per-stage subpackages are the source of truth.
// Each stage registers its prompts with the Resolver during startup; the
// pipeline resolves prompts by hierarchical key (e.g. "stages.outline.user")
// and renders them with Go template data.
package prompts

// EmbeddedPrompt is a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   `json:"key"`                   // Hierarchical key: stages.outline.user
	Text        string   `json:"text"`                  // The prompt text (Go template)
	Description string   `json:"description,omitempty"` // Human-readable description
	Variables   []string `json:"variables,omitempty"`   // Extracted template variables
	Hash        string   `json:"hash,omitempty"`        // SHA256 of the text for change detection
}
