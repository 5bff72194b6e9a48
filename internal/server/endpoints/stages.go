package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/pipeline"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// TextRequest is the request body shared by the rewrite stages.
type TextRequest struct {
	Text string `json:"text"`
}

// DraftRequest is the request body for POST /draft.
type DraftRequest struct {
	Outline     string `json:"outline"`
	PeopleFirst string `json:"people_first,omitempty"`
	TargetWords int    `json:"target_words,omitempty"`
}

// DraftEndpoint handles POST /draft.
type DraftEndpoint struct{}

func (e *DraftEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/draft", e.handler
}

func (e *DraftEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Outline) == "" {
		writeError(w, http.StatusBadRequest, "outline is required")
		return
	}

	p := svcctx.PipelineFrom(r.Context())
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	text, err := p.Draft(r.Context(), pipeline.DraftInput{
		Outline:     req.Outline,
		PeopleFirst: req.PeopleFirst,
		TargetWords: req.TargetWords,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

func (e *DraftEndpoint) Command(getServerURL func() string) *cobra.Command {
	var peopleFirst string
	var targetWords int
	cmd := &cobra.Command{
		Use:   "draft [outline-file]",
		Short: "Expand an enforced outline into a full draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outline, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp TextResponse
			if err := client.Post(cmd.Context(), "/draft", DraftRequest{
				Outline:     outline,
				PeopleFirst: peopleFirst,
				TargetWords: targetWords,
			}, &resp); err != nil {
				return err
			}
			fmt.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&peopleFirst, "people-first", "", "People-first summary to open the article with")
	cmd.Flags().IntVar(&targetWords, "target-words", 0, "Word budget (0 uses the configured default)")
	return cmd
}

// rewriteEndpoint is the shared shape of the single-text LLM stages:
// review, balance, human touch, summary, and case expansion.
type rewriteEndpoint struct {
	path  string
	use   string
	short string
	run   func(*pipeline.Pipeline, context.Context, string) (string, error)
}

func (e *rewriteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", e.path, e.handler
}

func (e *rewriteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	p := svcctx.PipelineFrom(r.Context())
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	text, err := e.run(p, r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

func (e *rewriteEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   e.use,
		Short: e.short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp TextResponse
			if err := client.Post(cmd.Context(), e.path, TextRequest{Text: text}, &resp); err != nil {
				return err
			}
			fmt.Println(resp.Text)
			return nil
		},
	}
}

// NewReviewEndpoint handles POST /review.
func NewReviewEndpoint() api.Endpoint {
	return &rewriteEndpoint{
		path:  "/review",
		use:   "review [file]",
		short: "Tighten a draft without touching structure or citations",
		run: func(p *pipeline.Pipeline, ctx context.Context, text string) (string, error) {
			return p.Review(ctx, text)
		},
	}
}

// NewBalanceEndpoint handles POST /balance.
func NewBalanceEndpoint() api.Endpoint {
	return &rewriteEndpoint{
		path:  "/balance",
		use:   "balance [file]",
		short: "Even out traditional and psychological readings",
		run: func(p *pipeline.Pipeline, ctx context.Context, text string) (string, error) {
			return p.Balance(ctx, text)
		},
	}
}

// NewHumanTouchEndpoint handles POST /human-touch.
func NewHumanTouchEndpoint() api.Endpoint {
	return &rewriteEndpoint{
		path:  "/human-touch",
		use:   "human-touch [file]",
		short: "Soften the register toward a human editorial voice",
		run: func(p *pipeline.Pipeline, ctx context.Context, text string) (string, error) {
			return p.HumanTouch(ctx, text)
		},
	}
}

// NewSummaryEndpoint handles POST /summary.
func NewSummaryEndpoint() api.Endpoint {
	return &rewriteEndpoint{
		path:  "/summary",
		use:   "summary [file]",
		short: "Produce the people-first summary lines",
		run: func(p *pipeline.Pipeline, ctx context.Context, text string) (string, error) {
			return p.Summary(ctx, text)
		},
	}
}

// NewExpandCasesEndpoint handles POST /cases/expand.
func NewExpandCasesEndpoint() api.Endpoint {
	return &rewriteEndpoint{
		path:  "/cases/expand",
		use:   "expand-cases [file]",
		short: "Deepen the influencing-cases section",
		run: func(p *pipeline.Pipeline, ctx context.Context, text string) (string, error) {
			return p.ExpandCases(ctx, text)
		},
	}
}
