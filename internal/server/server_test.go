package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/taabirhq/taabir/internal/config"
	"github.com/taabirhq/taabir/internal/home"
	"github.com/taabirhq/taabir/internal/providers"
)

func newTestServer(t *testing.T, mock *providers.MockClient) *httptest.Server {
	t.Helper()

	cm, err := config.NewManager("")
	if err != nil {
		t.Fatalf("config.NewManager() error = %v", err)
	}

	s, err := New(Config{
		ConfigManager: cm,
		LLM:           mock,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Server      string `json:"server"`
		LLMProvider string `json:"llm_provider"`
		Prompts     int    `json:"prompts"`
	}
	decodeBody(t, resp, &body)
	if body.Server != "running" {
		t.Errorf("server = %q", body.Server)
	}
	if body.LLMProvider != "mock" {
		t.Errorf("llm_provider = %q", body.LLMProvider)
	}
	if body.Prompts != 9 {
		t.Errorf("prompts = %d, want 9", body.Prompts)
	}
}

func TestEnforceOutlineEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/outline/enforce", map[string]string{
		"text":   "## منهجية التفسير\nفقرة.\n",
		"symbol": "المال",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Text string `json:"text"`
	}
	decodeBody(t, resp, &body)
	if !strings.Contains(body.Text, "## كيف نفسّر؟") {
		t.Error("methodology heading not normalized")
	}
	if !strings.Contains(body.Text, "## المصادر") {
		t.Error("missing section not appended")
	}
}

func TestEnforceOutlineRequiresSymbol(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/outline/enforce", map[string]string{"text": "x"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestOutlineEndpoint(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "## الخلاصة السريعة\n- نقطة.\n"
	ts := newTestServer(t, mock)

	resp := postJSON(t, ts.URL+"/outline", map[string]any{
		"symbol": "الذهب",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Text string `json:"text"`
	}
	decodeBody(t, resp, &body)
	if !strings.Contains(body.Text, "## الحالات المؤثرة") {
		t.Error("enforcement did not run on generated outline")
	}
	if mock.RequestCount() != 1 {
		t.Errorf("RequestCount = %d", mock.RequestCount())
	}
}

func TestDraftEndpointValidation(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/draft", map[string]string{"outline": "   "})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRewriteEndpoints(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "نص معدّل."
	ts := newTestServer(t, mock)

	for _, path := range []string{"/review", "/balance", "/human-touch", "/summary", "/cases/expand"} {
		t.Run(path, func(t *testing.T) {
			resp := postJSON(t, ts.URL+path, map[string]string{"text": "نص أصلي."})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var body struct {
				Text string `json:"text"`
			}
			decodeBody(t, resp, &body)
			if body.Text != "نص معدّل." {
				t.Errorf("text = %q", body.Text)
			}
		})
	}
}

func TestQualityReportEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/quality/report", map[string]string{
		"text": "ومن الجدير بالذكر أن النص يحتاج عملًا.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		FillerCount int `json:"filler_count"`
	}
	decodeBody(t, resp, &body)
	// "ومن الجدير بالذكر" also matches its table substring "الجدير بالذكر".
	if body.FillerCount != 2 {
		t.Errorf("filler_count = %d", body.FillerCount)
	}
}

func TestQualityGateEndpoint(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"pass": true, "scores": {"people_first": 8, "methodology": 8, "balance": 8, "sources": 8, "language": 8}, "problems": []}`
	ts := newTestServer(t, mock)

	resp := postJSON(t, ts.URL+"/quality/gate", map[string]string{"text": "نص المقال"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Pass bool `json:"pass"`
	}
	decodeBody(t, resp, &body)
	if !body.Pass {
		t.Error("pass = false")
	}
}

func TestMetaEndpoint(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"title": "تفسير حلم المال", "description": "وصف قصير", "faq": [{"q": "س؟", "a": "ج."}]}`
	ts := newTestServer(t, mock)

	resp := postJSON(t, ts.URL+"/meta", map[string]string{
		"text":       "نص المقال",
		"primary_kw": "تفسير حلم المال",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Title string `json:"title"`
	}
	decodeBody(t, resp, &body)
	if body.Title != "تفسير حلم المال" {
		t.Errorf("title = %q", body.Title)
	}
}

func TestJSONLDEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/jsonld", map[string]any{
		"meta": map[string]any{
			"title":       "تفسير حلم المال",
			"description": "وصف",
			"faq":         []map[string]string{{"q": "س؟", "a": "ج."}},
		},
		"author":       map[string]string{"name": "فريق التحرير"},
		"last_updated": "2026-08-26",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	decodeBody(t, resp, &body)
	if body["@context"] != "https://schema.org" {
		t.Errorf("@context = %v", body["@context"])
	}
	if _, ok := body["@graph"]; !ok {
		t.Error("missing @graph")
	}
}

func TestCleanupEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/cleanup", map[string]string{
		"text": "يشعر الرائي كأن الدنيا تطارده.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Text    string         `json:"text"`
		Removed map[string]int `json:"removed"`
	}
	decodeBody(t, resp, &body)
	if strings.Contains(body.Text, "كأن الدنيا") {
		t.Error("simile survived cleanup")
	}
	if !strings.Contains(body.Text, "تنويه") {
		t.Error("disclaimer missing")
	}
	if body.Removed["kaanna_sentences_rewritten"] != 1 {
		t.Errorf("removed = %v", body.Removed)
	}
}

func TestExportDOCXEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/export/docx", map[string]string{
		"text": "## الخلاصة السريعة\nنص.\n",
		"name": "almal",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "wordprocessingml") {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "almal.docx") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportEPUBEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/export/epub", map[string]string{
		"text": "# تفسير حلم المال\n\n## الخلاصة السريعة\nنص.\n",
		"name": "almal",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/epub+zip" {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "almal.epub") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportRunsCleanupPass(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/export/docx", map[string]string{
		"text": "## الخلاصة السريعة\nيشعر الرائي كأن المال يطارده في كل مكان.\n",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	var doc string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			b, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatal(err)
			}
			doc = string(b)
		}
	}
	if doc == "" {
		t.Fatal("word/document.xml missing")
	}
	if strings.Contains(doc, "كأن المال يطارده") {
		t.Error("simile sentence survived export")
	}
	if !strings.Contains(doc, "تنويه") {
		t.Error("disclaimer missing from export")
	}
}

func TestExportSavesCopyToHome(t *testing.T) {
	cm, err := config.NewManager("")
	if err != nil {
		t.Fatalf("config.NewManager() error = %v", err)
	}
	dir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	s, err := New(Config{
		ConfigManager: cm,
		LLM:           providers.NewMockClient(),
		Home:          dir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/export/pdf", map[string]string{
		"text": "## الخلاصة السريعة\nنص.\n",
		"name": "almal",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, err := os.Stat(dir.ExportPath("almal", "pdf")); err != nil {
		t.Errorf("export copy not written: %v", err)
	}
}

func TestListPromptsEndpoint(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp, err := http.Get(ts.URL + "/prompts")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Prompts []struct {
			Key  string `json:"key"`
			Hash string `json:"hash"`
		} `json:"prompts"`
	}
	decodeBody(t, resp, &body)
	if len(body.Prompts) != 9 {
		t.Fatalf("prompts = %d, want 9", len(body.Prompts))
	}
	for _, p := range body.Prompts {
		if p.Hash == "" {
			t.Errorf("prompt %s has empty hash", p.Key)
		}
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	ts := newTestServer(t, providers.NewMockClient())

	resp := postJSON(t, ts.URL+"/outline/enforce", map[string]string{
		"text":   "x",
		"symbol": "المال",
		"bogus":  "y",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
