package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/taabirhq/taabir/internal/outline"
	"github.com/taabirhq/taabir/internal/prompts"
	"github.com/taabirhq/taabir/internal/providers"
)

func newTestPipeline(t *testing.T, mock *providers.MockClient) *Pipeline {
	t.Helper()
	resolver := prompts.NewResolver(slog.Default())
	RegisterAllPrompts(resolver)
	return New(mock, resolver, slog.Default(), Defaults{
		TargetWords: 1200,
		References: References{
			IbnSirinEdition: "تفسير الأحلام الكبير",
			NabulsiEdition:  "تعطير الأنام",
		},
	})
}

func TestRegisterAllPrompts(t *testing.T) {
	resolver := prompts.NewResolver(slog.Default())
	RegisterAllPrompts(resolver)

	all := resolver.All()
	if len(all) != 9 {
		t.Fatalf("registered %d prompts, want 9", len(all))
	}
	for _, p := range all {
		if !strings.HasPrefix(p.Key, "stages.") {
			t.Errorf("unexpected prompt key %q", p.Key)
		}
		if p.Hash == "" {
			t.Errorf("prompt %q has no hash", p.Key)
		}
	}
}

func TestOutlineEnforcesHeadings(t *testing.T) {
	mock := providers.NewMockClient()
	// The model returns a partial skeleton; enforcement must complete it.
	mock.ResponseText = "## مقدمة سريعة\nنص تمهيدي.\n"
	p := newTestPipeline(t, mock)

	got, err := p.Outline(context.Background(), OutlineInput{Symbol: "الذهب"})
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}

	h2, _ := outline.ParseHeadings(got)
	set := make(map[string]bool, len(h2))
	for _, h := range h2 {
		set[h] = true
	}
	for _, want := range []string{"مقدمة سريعة", "كيف نفسّر؟", "الحالات المؤثرة", "المصادر"} {
		if !set[want] {
			t.Errorf("missing section %q in enforced outline", want)
		}
	}
	if mock.RequestCount() != 1 {
		t.Errorf("RequestCount = %d, want 1", mock.RequestCount())
	}
}

func TestOutlineRequiresSymbol(t *testing.T) {
	p := newTestPipeline(t, providers.NewMockClient())
	if _, err := p.Outline(context.Background(), OutlineInput{Symbol: "  "}); err == nil {
		t.Error("expected error for blank symbol")
	}
}

func TestEnforceOutlineDeterministic(t *testing.T) {
	in := "## منهجية التفسير\nفقرة.\n\n## الحالات المؤثرة\nتمهيد للحالات.\n"
	got := EnforceOutline(in, "المال")

	if strings.Contains(got, "منهجية التفسير") {
		t.Error("variant methodology heading survived normalization")
	}
	if !strings.Contains(got, "## "+outline.MethodologyHeading) {
		t.Error("canonical methodology heading missing")
	}
	// Money symbol gets the detailed case subsections.
	if !strings.Contains(got, "### العدّ") {
		t.Error("money case subsection missing")
	}
}

func TestEnforceOutlineRepairsBeforeNormalizing(t *testing.T) {
	// Repair runs on the raw text, so the variant heading does not count
	// as the canonical methodology section: a canonical one is appended,
	// and the variant is rewritten afterwards.
	got := EnforceOutline("## منهجية التفسير\nفقرة.\n", "المال")

	if n := strings.Count(got, "## "+outline.MethodologyHeading); n != 2 {
		t.Errorf("canonical methodology headings = %d, want 2\n%s", n, got)
	}
}

func TestDraftUsesConfiguredTarget(t *testing.T) {
	mock := providers.NewMockClient()
	var sentPrompt string
	mock.ResponseFunc = func(req *providers.ChatRequest) string {
		sentPrompt = req.Messages[len(req.Messages)-1].Content
		return "مسودة المقال."
	}
	p := newTestPipeline(t, mock)

	got, err := p.Draft(context.Background(), DraftInput{Outline: "## مقدمة سريعة\n"})
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if got != "مسودة المقال." {
		t.Errorf("Draft() = %q", got)
	}
	if !strings.Contains(sentPrompt, "1200") {
		t.Error("default target words not rendered into prompt")
	}
	if !strings.Contains(sentPrompt, "تفسير الأحلام الكبير") {
		t.Error("reference edition not rendered into prompt")
	}
}

func TestDraftRequiresOutline(t *testing.T) {
	p := newTestPipeline(t, providers.NewMockClient())
	if _, err := p.Draft(context.Background(), DraftInput{}); err == nil {
		t.Error("expected error for empty outline")
	}
}

func TestRewriteStages(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "نص معدّل."
	p := newTestPipeline(t, mock)
	ctx := context.Background()

	stages := map[string]func(context.Context, string) (string, error){
		"summary":     p.Summary,
		"review":      p.Review,
		"balance":     p.Balance,
		"human touch": p.HumanTouch,
		"cases":       p.ExpandCases,
	}
	for name, fn := range stages {
		t.Run(name, func(t *testing.T) {
			got, err := fn(ctx, "نص أصلي.")
			if err != nil {
				t.Fatalf("stage error = %v", err)
			}
			if got != "نص معدّل." {
				t.Errorf("stage output = %q", got)
			}
		})
	}
}

func TestMetaFAQ(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"title": "تفسير حلم المال", "description": "وصف", "faq": [{"q": "س؟", "a": "ج."}]}`
	p := newTestPipeline(t, mock)

	got, err := p.MetaFAQ(context.Background(), "نص المقال", "تفسير حلم المال")
	if err != nil {
		t.Fatalf("MetaFAQ() error = %v", err)
	}
	if got.Title != "تفسير حلم المال" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.FAQ) != 1 || got.FAQ[0].Question != "س؟" {
		t.Errorf("FAQ = %+v", got.FAQ)
	}
	if got.Warning != "" {
		t.Errorf("unexpected warning %q", got.Warning)
	}
}

func TestQualityGate(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"pass": false, "scores": {"people_first": 6, "methodology": 7, "balance": 5, "sources": 8, "language": 7}, "problems": ["التوازن ضعيف"]}`
	p := newTestPipeline(t, mock)

	verdict, err := p.QualityGate(context.Background(), "نص المقال")
	if err != nil {
		t.Fatalf("QualityGate() error = %v", err)
	}
	if verdict.Pass {
		t.Error("Pass = true, want false")
	}
	if verdict.Scores["balance"] != 5 {
		t.Errorf("balance score = %d", verdict.Scores["balance"])
	}
	if len(verdict.Problems) != 1 {
		t.Errorf("problems = %v", verdict.Problems)
	}
}

func TestQualityGateMalformedVerdict(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "ليس JSON"
	p := newTestPipeline(t, mock)

	if _, err := p.QualityGate(context.Background(), "نص"); err == nil {
		t.Error("expected error for malformed verdict")
	}
}

func TestQualityReport(t *testing.T) {
	p := newTestPipeline(t, providers.NewMockClient())
	report := p.QualityReport("ومن الجدير بالذكر أن هذا نص. ## كيف نفسّر؟\n")
	if report.FillerCount == 0 {
		t.Error("filler not detected")
	}
}

func TestFinalize(t *testing.T) {
	p := newTestPipeline(t, providers.NewMockClient())
	in := "## مقدمة سريعة\nيشعر الرائي كأن المال يطارده في كل مكان.\nبريق الأمل حاضر في التفاصيل.\n"

	res := p.Finalize(in)
	if strings.Contains(res.Text, "كأن المال يطارده") {
		t.Error("simile sentence survived Finalize")
	}
	if strings.Contains(res.Text, "بريق الأمل") {
		t.Error("imagery cliché survived Finalize")
	}
	if res.Removed["kaanna_sentences_rewritten"] != 1 {
		t.Errorf("Removed = %v", res.Removed)
	}
	if !strings.Contains(res.Text, "تنويه") {
		t.Error("disclaimer missing after Finalize")
	}
	if strings.Contains(res.Text, "(Placeholder)") {
		t.Error("placeholder bullets injected into a finished article")
	}
}
