package endpoints

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/prompts/qualitygate"
	"github.com/taabirhq/taabir/internal/quality"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// QualityReportEndpoint handles POST /quality/report: the deterministic
// heuristics, no LLM call.
type QualityReportEndpoint struct{}

func (e *QualityReportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/quality/report", e.handler
}

func (e *QualityReportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quality.Analyze(req.Text))
}

func (e *QualityReportEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "quality-report [file]",
		Short: "Run the heuristic quality checks over an article",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp quality.Report
			if err := client.Post(cmd.Context(), "/quality/report", TextRequest{Text: text}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// QualityGateEndpoint handles POST /quality/gate: the LLM editorial verdict.
type QualityGateEndpoint struct{}

func (e *QualityGateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/quality/gate", e.handler
}

func (e *QualityGateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	verdict, err := p.QualityGate(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (e *QualityGateEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "quality-gate [file]",
		Short: "Ask the model for an editorial pass/fail verdict",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp qualitygate.Verdict
			if err := client.Post(cmd.Context(), "/quality/gate", TextRequest{Text: text}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
