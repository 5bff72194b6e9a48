// Package pipeline chains the article generation stages: outline, draft,
// rewrite passes, meta/FAQ, and the deterministic quality and cleanup steps.
// Each LLM stage renders one embedded prompt and makes one chat call.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taabirhq/taabir/internal/cleanup"
	"github.com/taabirhq/taabir/internal/meta"
	"github.com/taabirhq/taabir/internal/outline"
	"github.com/taabirhq/taabir/internal/prompts"
	"github.com/taabirhq/taabir/internal/prompts/balance"
	"github.com/taabirhq/taabir/internal/prompts/casesexpander"
	"github.com/taabirhq/taabir/internal/prompts/draft"
	"github.com/taabirhq/taabir/internal/prompts/humantouch"
	"github.com/taabirhq/taabir/internal/prompts/metafaq"
	outlineprompt "github.com/taabirhq/taabir/internal/prompts/outline"
	"github.com/taabirhq/taabir/internal/prompts/qualitygate"
	"github.com/taabirhq/taabir/internal/prompts/review"
	"github.com/taabirhq/taabir/internal/prompts/summary"
	"github.com/taabirhq/taabir/internal/providers"
	"github.com/taabirhq/taabir/internal/quality"
)

// References pins the citation editions rendered into prompts.
type References struct {
	IbnSirinEdition string
	IbnSirinPage    string
	NabulsiEdition  string
	NabulsiPage     string
	PsychRef        string
}

// Defaults carries per-article defaults sourced from configuration.
type Defaults struct {
	TargetWords int
	References  References
	Author      meta.Person
	Reviewer    meta.Person
}

// Pipeline runs article generation stages against an LLM client.
type Pipeline struct {
	llm      providers.LLMClient
	resolver *prompts.Resolver
	logger   *slog.Logger
	defaults Defaults
}

// New creates a pipeline. A nil logger falls back to slog.Default.
func New(llm providers.LLMClient, resolver *prompts.Resolver, logger *slog.Logger, defaults Defaults) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if defaults.TargetWords <= 0 {
		defaults.TargetWords = 1500
	}
	return &Pipeline{
		llm:      llm,
		resolver: resolver,
		logger:   logger,
		defaults: defaults,
	}
}

// RegisterAllPrompts registers every stage prompt with the resolver.
func RegisterAllPrompts(r *prompts.Resolver) {
	outlineprompt.RegisterPrompts(r)
	summary.RegisterPrompts(r)
	draft.RegisterPrompts(r)
	review.RegisterPrompts(r)
	balance.RegisterPrompts(r)
	humantouch.RegisterPrompts(r)
	casesexpander.RegisterPrompts(r)
	metafaq.RegisterPrompts(r)
	qualitygate.RegisterPrompts(r)
}

// chat renders the prompt for key and makes a single chat call.
func (p *Pipeline) chat(ctx context.Context, key string, data any, format *providers.ResponseFormat) (*providers.ChatResult, error) {
	rendered, err := p.resolver.RenderPrompt(key, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt %s: %w", key, err)
	}

	result, err := p.llm.Chat(ctx, &providers.ChatRequest{
		Messages:       []providers.Message{{Role: "user", Content: rendered}},
		ResponseFormat: format,
	})
	if err != nil {
		return nil, fmt.Errorf("stage %s failed: %w", key, err)
	}

	p.logger.Info("stage complete",
		"stage", key,
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens,
	)
	return result, nil
}

// OutlineInput describes the article being outlined.
type OutlineInput struct {
	Symbol     string
	PrimaryKW  string
	RelatedKWs []string
}

// Outline generates a markdown outline for the symbol and runs it through
// the heading enforcement engine, so the result always carries the full
// required structure regardless of what the model returned.
func (p *Pipeline) Outline(ctx context.Context, in OutlineInput) (string, error) {
	if strings.TrimSpace(in.Symbol) == "" {
		return "", fmt.Errorf("outline: symbol is required")
	}
	if in.PrimaryKW == "" {
		in.PrimaryKW = "تفسير حلم " + in.Symbol
	}

	refs := p.defaults.References
	result, err := p.chat(ctx, outlineprompt.PromptKey, outlineprompt.Input{
		Symbol:          in.Symbol,
		PrimaryKW:       in.PrimaryKW,
		RelatedKWs:      strings.Join(in.RelatedKWs, "، "),
		IbnSirinEdition: refs.IbnSirinEdition,
		IbnSirinPage:    refs.IbnSirinPage,
		NabulsiEdition:  refs.NabulsiEdition,
		NabulsiPage:     refs.NabulsiPage,
		PsychRef:        refs.PsychRef,
	}, nil)
	if err != nil {
		return "", err
	}

	return EnforceOutline(result.Content, in.Symbol), nil
}

// EnforceOutline runs the deterministic heading enforcement engine: repair
// missing sections and subsections for the symbol, then normalize the
// methodology heading. Repair runs first, so a text carrying only the
// methodology variant still gets the canonical section appended before the
// variant is rewritten. No LLM call is made.
func EnforceOutline(text, symbol string) string {
	repaired := outline.Repair(text, outline.Requirements(symbol))
	return outline.NormalizeMethodologyHeading(repaired)
}

// Summary produces the people-first summary lines for an article.
func (p *Pipeline) Summary(ctx context.Context, article string) (string, error) {
	result, err := p.chat(ctx, summary.PromptKey, summary.Input{Article: article}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// DraftInput describes the draft stage input.
type DraftInput struct {
	Outline     string
	PeopleFirst string
	TargetWords int
}

// Draft expands an enforced outline into a full article draft.
func (p *Pipeline) Draft(ctx context.Context, in DraftInput) (string, error) {
	if strings.TrimSpace(in.Outline) == "" {
		return "", fmt.Errorf("draft: outline is required")
	}
	if in.TargetWords <= 0 {
		in.TargetWords = p.defaults.TargetWords
	}

	refs := p.defaults.References
	result, err := p.chat(ctx, draft.PromptKey, draft.Input{
		Outline:         in.Outline,
		PeopleFirst:     in.PeopleFirst,
		TargetWords:     in.TargetWords,
		IbnSirinEdition: refs.IbnSirinEdition,
		IbnSirinPage:    refs.IbnSirinPage,
		NabulsiEdition:  refs.NabulsiEdition,
		NabulsiPage:     refs.NabulsiPage,
		PsychRef:        refs.PsychRef,
	}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// Review tightens a draft without changing structure or citations.
func (p *Pipeline) Review(ctx context.Context, text string) (string, error) {
	result, err := p.chat(ctx, review.PromptKey, review.Input{Text: text}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// Balance rewrites a draft so traditional and psychological readings get
// comparable weight.
func (p *Pipeline) Balance(ctx context.Context, text string) (string, error) {
	result, err := p.chat(ctx, balance.PromptKey, balance.Input{Text: text}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// HumanTouch softens a draft's register toward a human editorial voice.
func (p *Pipeline) HumanTouch(ctx context.Context, text string) (string, error) {
	result, err := p.chat(ctx, humantouch.PromptKey, humantouch.Input{Text: text}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// ExpandCases deepens the influencing-cases section of an article.
func (p *Pipeline) ExpandCases(ctx context.Context, article string) (string, error) {
	result, err := p.chat(ctx, casesexpander.PromptKey, casesexpander.Input{Article: article}, nil)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// MetaFAQ generates the meta title, description, and FAQ for an article.
// The model is asked for structured JSON; unparseable output is preserved
// with a warning rather than failing the stage.
func (p *Pipeline) MetaFAQ(ctx context.Context, text, primaryKW string) (meta.MetaFAQ, error) {
	result, err := p.chat(ctx, metafaq.PromptKey, metafaq.Input{
		Text:      text,
		PrimaryKW: primaryKW,
	}, &providers.ResponseFormat{
		Type:       "json_schema",
		JSONSchema: providers.SchemaFor(metafaq.ResponseSchema),
	})
	if err != nil {
		return meta.MetaFAQ{}, err
	}

	content := result.Content
	if len(result.ParsedJSON) > 0 {
		content = string(result.ParsedJSON)
	}
	return meta.ParseMetaFAQ(content), nil
}

// QualityGate asks the model for an editorial verdict on the article.
func (p *Pipeline) QualityGate(ctx context.Context, text string) (qualitygate.Verdict, error) {
	result, err := p.chat(ctx, qualitygate.PromptKey, qualitygate.Input{Text: text}, &providers.ResponseFormat{
		Type:       "json_schema",
		JSONSchema: providers.SchemaFor(qualitygate.ResponseSchema),
	})
	if err != nil {
		return qualitygate.Verdict{}, err
	}

	raw := result.ParsedJSON
	if len(raw) == 0 {
		raw = []byte(result.Content)
	}
	var verdict qualitygate.Verdict
	if err := json.Unmarshal(raw, &verdict); err != nil {
		return qualitygate.Verdict{}, fmt.Errorf("quality gate returned malformed verdict: %w", err)
	}
	return verdict, nil
}

// QualityReport runs the deterministic heuristics over the article.
// No LLM call is made.
func (p *Pipeline) QualityReport(text string) quality.Report {
	return quality.Analyze(text)
}

// FinalizeResult is the cleaned article plus what the cleanup changed.
type FinalizeResult struct {
	Text    string         `json:"text"`
	Removed map[string]int `json:"removed"`
}

// Finalize prepares an article for export: strip stock similes and imagery
// clichés, then make sure the disclaimer is present. Heading enforcement is
// an outline-stage concern and is not re-run on a finished article.
func (p *Pipeline) Finalize(text string) FinalizeResult {
	cleaned, removed := cleanup.RemoveWithReport(text)
	cleaned = cleanup.EnsureDisclaimer(cleaned)
	return FinalizeResult{Text: cleaned, Removed: removed}
}

// Defaults returns the pipeline's article defaults.
func (p *Pipeline) Defaults() Defaults {
	return p.defaults
}
