package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	pdfLinesPerPage = 42
	pdfWrapColumn   = 74
	pdfFontSize     = 12
	pdfLeading      = 18
	pdfTopMargin    = 60
	pdfLeftMargin   = 48
)

// ToPDF renders the article text as an A4 PDF via a pdfcpu create spec.
func ToPDF(text string, w io.Writer) error {
	spec, err := buildCreateSpec(text)
	if err != nil {
		return err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Create(nil, bytes.NewReader(spec), w, conf); err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}
	return nil
}

// WritePDFFile writes the article to a PDF file at path, creating the
// parent directory if needed.
func WritePDFFile(text, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	return ToPDF(text, f)
}

// buildCreateSpec paginates the wrapped text into a pdfcpu JSON create spec.
func buildCreateSpec(text string) ([]byte, error) {
	lines := wrapLines(text, pdfWrapColumn)
	if len(lines) == 0 {
		lines = []string{""}
	}

	pages := map[string]any{}
	pageNum := 0
	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}

		var texts []map[string]any
		for i, line := range lines[start:end] {
			texts = append(texts, map[string]any{
				"value":  line,
				"anchor": "tl",
				"dx":     pdfLeftMargin,
				"dy":     pdfTopMargin + i*pdfLeading,
				"font":   map[string]any{"name": "Helvetica", "size": pdfFontSize},
			})
		}

		pageNum++
		pages[fmt.Sprintf("%d", pageNum)] = map[string]any{
			"content": map[string]any{"text": texts},
		}
	}

	spec := map[string]any{
		"origin": "upperLeft",
		"paper":  "A4",
		"pages":  pages,
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pdf spec: %w", err)
	}
	return raw, nil
}

// wrapLines splits text into lines no wider than col runes. Markdown
// heading markers are kept; wrapping breaks on spaces where possible.
func wrapLines(text string, col int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			out = append(out, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > col {
			cut := col
			for cut > 0 && runes[cut] != ' ' {
				cut--
			}
			if cut == 0 {
				cut = col
			}
			out = append(out, strings.TrimRight(string(runes[:cut]), " "))
			for cut < len(runes) && runes[cut] == ' ' {
				cut++
			}
			runes = runes[cut:]
		}
		out = append(out, string(runes))
	}
	// Drop trailing blank lines so an article never ends on an empty page.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
