package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":     "test-id",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     12,
			"completion_tokens": 7,
			"total_tokens":      19,
		},
	}
}

func TestOpenAIClient_Chat(t *testing.T) {
	t.Run("successful chat", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}
			if rid := r.Header.Get("X-Request-Id"); rid == "" {
				t.Error("missing request id header")
			}
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionResponse("المال في المنام رزق غالبًا."))
		}))
		defer server.Close()

		client := NewOpenAIClient(OpenAIConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
		})

		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "فسّر حلم المال"}},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if !result.Success {
			t.Error("expected Success = true")
		}
		if result.Content != "المال في المنام رزق غالبًا." {
			t.Errorf("Content = %q", result.Content)
		}
		if result.PromptTokens != 12 || result.CompletionTokens != 7 {
			t.Errorf("token counts = %d/%d", result.PromptTokens, result.CompletionTokens)
		}

		// The fixed Arabic system prompt is prepended.
		msgs := gotBody["messages"].([]any)
		first := msgs[0].(map[string]any)
		if first["role"] != "system" {
			t.Errorf("first message role = %v", first["role"])
		}
		if !strings.Contains(first["content"].(string), "تفسير الأحلام") {
			t.Errorf("system prompt = %v", first["content"])
		}
	})

	t.Run("structured output parsed and validated", func(t *testing.T) {
		fenced := "```json\n{\"pass\": true, \"scores\": {\"people_first\": 8, \"methodology\": 8, \"balance\": 8, \"sources\": 8, \"language\": 8}, \"problems\": []}\n```"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionResponse(fenced))
		}))
		defer server.Close()

		client := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL})

		schema, _ := json.Marshal(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pass":     map[string]any{"type": "boolean"},
				"scores":   map[string]any{"type": "object"},
				"problems": map[string]any{"type": "array"},
			},
			"required": []string{"pass"},
		})
		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages:       []Message{{Role: "user", Content: "قيّم"}},
			ResponseFormat: &ResponseFormat{Type: "json_schema", JSONSchema: schema},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		var verdict struct {
			Pass bool `json:"pass"`
		}
		if err := json.Unmarshal(result.ParsedJSON, &verdict); err != nil {
			t.Fatalf("ParsedJSON invalid: %v", err)
		}
		if !verdict.Pass {
			t.Error("pass = false")
		}
	})

	t.Run("server error surfaces after retries", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewOpenAIClient(OpenAIConfig{
			APIKey:     "k",
			BaseURL:    server.URL,
			MaxRetries: 2,
			RetryDelay: time.Millisecond,
		})
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "x"}},
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls < 2 {
			t.Errorf("calls = %d, want retries", calls)
		}
	})

	t.Run("empty request rejected", func(t *testing.T) {
		client := NewOpenAIClient(OpenAIConfig{APIKey: "k"})
		if _, err := client.Chat(context.Background(), &ChatRequest{}); err == nil {
			t.Error("expected error for empty messages")
		}
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("consumes tokens", func(t *testing.T) {
		rl := NewRateLimiter(60)
		for i := 0; i < 10; i++ {
			if !rl.TryConsume() {
				t.Fatalf("token %d unavailable", i)
			}
		}
	})

	t.Run("blocks when drained and honors cancellation", func(t *testing.T) {
		rl := NewRateLimiter(1)
		if !rl.TryConsume() {
			t.Fatal("first token unavailable")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := rl.Wait(ctx); err == nil {
			t.Error("expected context deadline error")
		}
	})
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()
	mock.ResponseText = "نص"
	res, err := mock.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.Content != "نص" || mock.RequestCount() != 1 {
		t.Errorf("res = %+v, count = %d", res, mock.RequestCount())
	}

	mock.ShouldFail = true
	if _, err := mock.Chat(context.Background(), &ChatRequest{}); err == nil {
		t.Error("expected failure")
	}
}
