package endpoints

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taabirhq/taabir/internal/api"
	"github.com/taabirhq/taabir/internal/cleanup"
	"github.com/taabirhq/taabir/internal/export"
	"github.com/taabirhq/taabir/internal/svcctx"
)

// ExportRequest is the request body for the export endpoints.
type ExportRequest struct {
	Text string `json:"text"`
	Name string `json:"name,omitempty"` // Base name for the attachment
}

func baseName(req ExportRequest) string {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "article"
	}
	return name
}

func attachmentName(req ExportRequest, ext string) string {
	return baseName(req) + "." + ext
}

// finalizeForExport runs the mandatory pre-export pass: strip similes and
// imagery clichés, append the disclaimer.
func finalizeForExport(ctx context.Context, text string) string {
	if p := svcctx.PipelineFrom(ctx); p != nil {
		return p.Finalize(text).Text
	}
	return cleanup.EnsureDisclaimer(cleanup.RemoveFillerPhrases(text))
}

// saveExportCopy writes a copy of the export into the home exports
// directory when a home dir is configured. Failures are logged, not
// surfaced: the HTTP response already carries the bytes.
func saveExportCopy(ctx context.Context, base, ext string, write func(path string) error) {
	h := svcctx.HomeFrom(ctx)
	if h == nil {
		return
	}
	path := h.ExportPath(base, ext)
	err := h.EnsureExists()
	if err == nil {
		err = write(path)
	}
	if log := svcctx.LoggerFrom(ctx); log != nil && err != nil {
		log.Warn("failed to save export copy", "path", path, "error", err)
	}
}

// ExportDOCXEndpoint handles POST /export/docx and returns the file bytes.
type ExportDOCXEndpoint struct{}

func (e *ExportDOCXEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/export/docx", e.handler
}

func (e *ExportDOCXEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := finalizeForExport(r.Context(), req.Text)

	var buf bytes.Buffer
	if err := export.ToDOCX(text, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	saveExportCopy(r.Context(), baseName(req), "docx", func(path string) error {
		return export.WriteDOCXFile(text, path)
	})

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(req, "docx")))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (e *ExportDOCXEndpoint) Command(getServerURL func() string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-docx [file]",
		Short: "Export an article as DOCX",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			raw, err := client.PostRaw(cmd.Context(), "/export/docx", ExportRequest{Text: text})
			if err != nil {
				return err
			}
			if out == "" {
				out = "article.docx"
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default article.docx)")
	return cmd
}

// ExportPDFEndpoint handles POST /export/pdf and returns the file bytes.
type ExportPDFEndpoint struct{}

func (e *ExportPDFEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/export/pdf", e.handler
}

func (e *ExportPDFEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := finalizeForExport(r.Context(), req.Text)

	var buf bytes.Buffer
	if err := export.ToPDF(text, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	saveExportCopy(r.Context(), baseName(req), "pdf", func(path string) error {
		return export.WritePDFFile(text, path)
	})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(req, "pdf")))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (e *ExportPDFEndpoint) Command(getServerURL func() string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-pdf [file]",
		Short: "Export an article as PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			raw, err := client.PostRaw(cmd.Context(), "/export/pdf", ExportRequest{Text: text})
			if err != nil {
				return err
			}
			if out == "" {
				out = "article.pdf"
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default article.pdf)")
	return cmd
}

// ExportEPUBEndpoint handles POST /export/epub and returns the file bytes.
type ExportEPUBEndpoint struct{}

func (e *ExportEPUBEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/export/epub", e.handler
}

func (e *ExportEPUBEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := finalizeForExport(r.Context(), req.Text)

	meta := export.EPUBMeta{Title: articleTitle(text)}
	if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
		meta.Author = cm.Get().Article.AuthorName
	}

	var buf bytes.Buffer
	if err := export.ToEPUB(text, meta, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	saveExportCopy(r.Context(), baseName(req), "epub", func(path string) error {
		return export.WriteEPUBFile(text, meta, path)
	})

	w.Header().Set("Content-Type", "application/epub+zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(req, "epub")))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (e *ExportEPUBEndpoint) Command(getServerURL func() string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-epub [file]",
		Short: "Export an article as ePub",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			raw, err := client.PostRaw(cmd.Context(), "/export/epub", ExportRequest{Text: text})
			if err != nil {
				return err
			}
			if out == "" {
				out = "article.epub"
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default article.epub)")
	return cmd
}

// articleTitle returns the first H1 heading in the text, or a default.
func articleTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return "مقال تفسير الأحلام"
}
