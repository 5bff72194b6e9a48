package endpoints

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/meta"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// MetaRequest is the request body for POST /meta.
type MetaRequest struct {
	Text      string `json:"text"`
	PrimaryKW string `json:"primary_kw"`
}

// MetaEndpoint handles POST /meta: title/description/FAQ generation.
type MetaEndpoint struct{}

func (e *MetaEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/meta", e.handler
}

func (e *MetaEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req MetaRequest
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

	mf, err := p.MetaFAQ(r.Context(), req.Text, req.PrimaryKW)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mf)
}

func (e *MetaEndpoint) Command(getServerURL func() string) *cobra.Command {
	var primaryKW string
	cmd := &cobra.Command{
		Use:   "meta [file]",
		Short: "Generate meta title, description, and FAQ",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp meta.MetaFAQ
			if err := client.Post(cmd.Context(), "/meta", MetaRequest{
				Text:      text,
				PrimaryKW: primaryKW,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&primaryKW, "primary-kw", "", "Primary SEO keyword")
	return cmd
}

// JSONLDRequest is the request body for POST /jsonld.
type JSONLDRequest struct {
	Meta        meta.MetaFAQ `json:"meta"`
	Author      meta.Person  `json:"author,omitempty"`
	Reviewer    meta.Person  `json:"reviewer,omitempty"`
	LastUpdated string       `json:"last_updated,omitempty"`
}

// JSONLDEndpoint handles POST /jsonld: assemble the schema.org graph.
// Author and reviewer default to the configured article settings.
type JSONLDEndpoint struct{}

func (e *JSONLDEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/jsonld", e.handler
}

func (e *JSONLDEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req JSONLDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Author.Name == "" || req.Reviewer.Name == "" {
		if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
			article := cm.Get().Article
			if req.Author.Name == "" {
				req.Author = meta.Person{Name: article.AuthorName, Credentials: article.AuthorCredentials}
			}
			if req.Reviewer.Name == "" {
				req.Reviewer = meta.Person{Name: article.ReviewerName, Credentials: article.ReviewerCredentials}
			}
		}
	}

	writeJSON(w, http.StatusOK, meta.BuildJSONLD(req.Meta, req.Author, req.Reviewer, req.LastUpdated))
}

func (e *JSONLDEndpoint) Command(getServerURL func() string) *cobra.Command {
	var lastUpdated string
	cmd := &cobra.Command{
		Use:   "jsonld [meta-file]",
		Short: "Build the schema.org JSON-LD graph from a meta/FAQ document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTextArg(args)
			if err != nil {
				return err
			}
			mf := meta.ParseMetaFAQ(raw)
			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Post(cmd.Context(), "/jsonld", JSONLDRequest{
				Meta:        mf,
				LastUpdated: lastUpdated,
			}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&lastUpdated, "last-updated", "", "dateModified value (ISO date)")
	return cmd
}
