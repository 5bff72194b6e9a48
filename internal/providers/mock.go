package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is an LLMClient for tests and offline runs.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // Fail after N requests (0 = never)
	ResponseText string

	// ResponseFunc, when set, overrides ResponseText per request.
	ResponseFunc func(req *ChatRequest) string

	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string { return MockClientName }

// RequestCount returns the number of Chat calls made.
func (c *MockClient) RequestCount() int64 { return c.requestCount.Load() }

// Chat returns the configured response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	n := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail || (c.FailAfter > 0 && n > int64(c.FailAfter)) {
		return nil, fmt.Errorf("mock failure on request %d", n)
	}

	content := c.ResponseText
	if c.ResponseFunc != nil {
		content = c.ResponseFunc(req)
	}

	result := &ChatResult{
		Content:  content,
		Model:    MockClientName,
		Success:  true,
		Duration: c.Latency,
	}
	if req.ResponseFormat != nil {
		parsed, err := parseStructuredJSON(content)
		if err != nil {
			return result, fmt.Errorf("structured output: %w", err)
		}
		if err := validateStructuredJSON(req.ResponseFormat.JSONSchema, parsed); err != nil {
			return result, fmt.Errorf("structured output: %w", err)
		}
		result.ParsedJSON = parsed
	}
	return result, nil
}
