package providers

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseStructuredJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{
			name:    "plain object",
			content: `{"title": "تفسير"}`,
			wantKey: "title",
		},
		{
			name:    "fenced json block",
			content: "```json\n{\"title\": \"تفسير\"}\n```",
			wantKey: "title",
		},
		{
			name:    "fenced without language tag",
			content: "```\n{\"title\": \"تفسير\"}\n```",
			wantKey: "title",
		},
		{
			name:    "object embedded in prose",
			content: "إليك النتيجة:\n{\"title\": \"تفسير\"}\nانتهى.",
			wantKey: "title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := parseStructuredJSON(tt.content)
			if err != nil {
				t.Fatalf("parseStructuredJSON() error = %v", err)
			}
			var m map[string]any
			if err := json.Unmarshal(raw, &m); err != nil {
				t.Fatalf("result not valid JSON: %v", err)
			}
			if _, ok := m[tt.wantKey]; !ok {
				t.Errorf("missing key %q in %s", tt.wantKey, raw)
			}
		})
	}

	t.Run("no JSON at all", func(t *testing.T) {
		if _, err := parseStructuredJSON("لا يوجد شيء هنا"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidateStructuredJSON(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"q": {"type": "string"},
			"a": {"type": "string"}
		},
		"required": ["q", "a"]
	}`)

	t.Run("valid document", func(t *testing.T) {
		doc := json.RawMessage(`{"q": "سؤال", "a": "جواب"}`)
		if err := validateStructuredJSON(schema, doc); err != nil {
			t.Errorf("validateStructuredJSON() error = %v", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := json.RawMessage(`{"q": "سؤال"}`)
		err := validateStructuredJSON(schema, doc)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "a") {
			t.Errorf("error does not name missing field: %v", err)
		}
	})

	t.Run("json_schema envelope unwrapped", func(t *testing.T) {
		envelope := json.RawMessage(`{
			"name": "faq",
			"schema": {
				"type": "object",
				"required": ["q"],
				"properties": {"q": {"type": "string"}}
			}
		}`)
		if err := validateStructuredJSON(envelope, json.RawMessage(`{"q": "س"}`)); err != nil {
			t.Errorf("validateStructuredJSON() error = %v", err)
		}
		if err := validateStructuredJSON(envelope, json.RawMessage(`{}`)); err == nil {
			t.Error("expected validation error for empty object")
		}
	})
}
