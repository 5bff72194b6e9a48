package prompts

import (
	"log/slog"
	"strings"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "مرحبًا {{.Name}} لديك {{.Count}}", []string{"Count", "Name"}},
		{"spaced and nested", "{{ .Article.Title }} و {{.Symbol}}", []string{"Article.Title", "Symbol"}},
		{"deduplicated", "{{.X}} {{.X}}", []string{"X"}},
		{"none", "نص بلا متغيرات", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVariables(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	got, err := Render("test", "رمز: {{.Symbol}}", map[string]string{"Symbol": "المال"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "رمز: المال" {
		t.Errorf("got %q", got)
	}

	t.Run("missing variable is an error", func(t *testing.T) {
		_, err := Render("test", "{{.Missing}}", map[string]string{})
		if err == nil {
			t.Error("expected error for missing variable")
		}
	})
}

func TestResolver(t *testing.T) {
	r := NewResolver(slog.Default())
	r.Register(EmbeddedPrompt{Key: "stages.test.user", Text: "نص {{.X}}"})

	p, err := r.Resolve("stages.test.user")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Hash == "" {
		t.Error("hash not computed")
	}
	if len(p.Variables) != 1 || p.Variables[0] != "X" {
		t.Errorf("variables = %v", p.Variables)
	}

	if _, err := r.Resolve("stages.absent.user"); err == nil {
		t.Error("expected error for unknown key")
	}

	out, err := r.RenderPrompt("stages.test.user", map[string]string{"X": "قيمة"})
	if err != nil {
		t.Fatalf("RenderPrompt() error = %v", err)
	}
	if !strings.Contains(out, "قيمة") {
		t.Errorf("out = %q", out)
	}
}
