package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4o-mini"
)

// arabicSystemPrompt is fixed for every article call. It encodes the house
// style: no filler, light sensory register, interpretations framed as
// conjecture, tradition balanced against modern psychology.
const arabicSystemPrompt = "أنت كاتب عربي متخصص في تفسير الأحلام. " +
	"التزم بما يلي: " +
	"1) لا حشو ولا تكرار أبدًا، " +
	"2) أضف عبارات حسّية خفيفة عند الحاجة دون إسراف، " +
	"3) وضّح دائمًا أن التفسير ظنّي/اجتهادي وليس قطعيًا، " +
	"4) وازن بين التراث (ابن سيرين/النابلسي/ابن شاهين) والعلم الحديث (علم النفس/العقل الباطن) " +
	"5) استخدم لغة عربية فصيحة سلسة، جمل متفاوتة الطول، وتجنّب الإنشاء."

// OpenAIConfig holds configuration for the OpenAI chat client.
type OpenAIConfig struct {
	APIKey      string
	Model       string  // "gpt-4o-mini" (default)
	Temperature float64 // Default generation temperature
	MaxTokens   int     // Default completion budget
	RateLimit   int     // Requests per minute
	MaxRetries  int     // Retry attempts around the call
	RetryDelay  time.Duration
	Timeout     time.Duration // HTTP timeout
	BaseURL     string        // Optional (tests)
	HTTPClient  *http.Client  // Optional (tests)
}

// OpenAIClient implements LLMClient using the official OpenAI SDK.
type OpenAIClient struct {
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	retryDelay  time.Duration
	limiter     *RateLimiter
	client      openai.Client
}

// NewOpenAIClient creates a new OpenAI chat client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.4
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1800
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 150
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		// retry-go owns retries; the SDK transport should not stack its
		// own on top.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		limiter:     NewRateLimiter(cfg.RateLimit),
		client:      openai.NewClient(opts...),
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string { return OpenAIName }

// Chat sends a chat completion request. The fixed Arabic system prompt is
// prepended unless the request already carries a system message. When a
// ResponseFormat is set, the content is parsed and validated locally
// against the schema (the prompt itself demands JSON-only output).
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("chat request has no messages")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	params := c.buildParams(req)
	start := time.Now()

	completion, err := retry.DoWithData(
		func() (*openai.ChatCompletion, error) {
			return c.client.Chat.Completions.New(ctx, params,
				option.WithHeader("X-Request-ID", requestID))
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
	)
	if err != nil {
		return &ChatResult{
			Model:    string(params.Model),
			Duration: time.Since(start),
			Error:    err.Error(),
		}, fmt.Errorf("openai chat failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai chat returned no choices")
	}

	result := &ChatResult{
		Content:          strings.TrimSpace(completion.Choices[0].Message.Content),
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		Model:            completion.Model,
		Duration:         time.Since(start),
		Success:          true,
	}

	if req.ResponseFormat != nil {
		parsed, perr := parseStructuredJSON(result.Content)
		if perr != nil {
			return result, fmt.Errorf("structured output: %w", perr)
		}
		if verr := validateStructuredJSON(req.ResponseFormat.JSONSchema, parsed); verr != nil {
			return result, fmt.Errorf("structured output: %w", verr)
		}
		result.ParsedJSON = parsed
	}

	return result, nil
}

// buildParams translates a ChatRequest into SDK params, applying client
// defaults for unset fields.
func (c *OpenAIClient) buildParams(req *ChatRequest) openai.ChatCompletionNewParams {
	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	hasSystem := false
	for _, m := range req.Messages {
		if m.Role == "system" {
			hasSystem = true
		}
	}
	if !hasSystem {
		messages = append(messages, openai.SystemMessage(arabicSystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	}
}
