package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/cleanup"
)

// CleanupResponse is the cleaned text plus what changed.
type CleanupResponse struct {
	Text    string         `json:"text"`
	Removed map[string]int `json:"removed"`
}

// CleanupEndpoint handles POST /cleanup: simile and imagery scrubbing plus
// the mandatory disclaimer, no LLM call.
type CleanupEndpoint struct{}

func (e *CleanupEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/cleanup", e.handler
}

func (e *CleanupEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, removed := cleanup.RemoveWithReport(req.Text)
	text = cleanup.EnsureDisclaimer(text)
	writeJSON(w, http.StatusOK, CleanupResponse{Text: text, Removed: removed})
}

func (e *CleanupEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup [file]",
		Short: "Scrub imagery clichés and append the disclaimer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp CleanupResponse
			if err := client.Post(cmd.Context(), "/cleanup", TextRequest{Text: text}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
