package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/pipeline"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// OutlineRequest is the request body for POST /outline.
type OutlineRequest struct {
	Symbol     string   `json:"symbol"`
	PrimaryKW  string   `json:"primary_kw,omitempty"`
	RelatedKWs []string `json:"related_kws,omitempty"`
}

// TextResponse carries a single text payload, the common response shape
// for the generation stages.
type TextResponse struct {
	Text string `json:"text"`
}

// OutlineEndpoint handles POST /outline: generate an outline with the LLM
// and run it through heading enforcement.
type OutlineEndpoint struct{}

func (e *OutlineEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/outline", e.handler
}

func (e *OutlineEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req OutlineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	p := svcctx.PipelineFrom(r.Context())
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	text, err := p.Outline(r.Context(), pipeline.OutlineInput{
		Symbol:     req.Symbol,
		PrimaryKW:  req.PrimaryKW,
		RelatedKWs: req.RelatedKWs,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

func (e *OutlineEndpoint) Command(getServerURL func() string) *cobra.Command {
	var primaryKW string
	var relatedKWs []string
	cmd := &cobra.Command{
		Use:   "outline <symbol>",
		Short: "Generate an enforced outline for a dream symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp TextResponse
			err := client.Post(cmd.Context(), "/outline", OutlineRequest{
				Symbol:     trimArg(args, 0),
				PrimaryKW:  primaryKW,
				RelatedKWs: relatedKWs,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&primaryKW, "primary-kw", "", "Primary SEO keyword")
	cmd.Flags().StringSliceVar(&relatedKWs, "related-kw", nil, "Related keywords (repeatable)")
	return cmd
}

// EnforceRequest is the request body for POST /outline/enforce.
type EnforceRequest struct {
	Text   string `json:"text"`
	Symbol string `json:"symbol"`
}

// EnforceOutlineEndpoint handles POST /outline/enforce: the deterministic
// heading enforcement engine, no LLM call.
type EnforceOutlineEndpoint struct{}

func (e *EnforceOutlineEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/outline/enforce", e.handler
}

func (e *EnforceOutlineEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req EnforceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	writeJSON(w, http.StatusOK, TextResponse{
		Text: pipeline.EnforceOutline(req.Text, req.Symbol),
	})
}

func (e *EnforceOutlineEndpoint) Command(getServerURL func() string) *cobra.Command {
	var symbol string
	cmd := &cobra.Command{
		Use:   "enforce [file]",
		Short: "Repair an outline's required headings (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp TextResponse
			if err := client.Post(cmd.Context(), "/outline/enforce", EnforceRequest{
				Text:   text,
				Symbol: symbol,
			}, &resp); err != nil {
				return err
			}
			fmt.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "Dream symbol the outline covers")
	cmd.MarkFlagRequired("symbol")
	return cmd
}
