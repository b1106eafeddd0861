package llmprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/llm"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

type requestStartedAt struct{}

// Config holds the OpenAI-compatible endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible /chat/completions endpoint such as Groq.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ llm.Client = (*Client)(nil)

// NewClient creates a resty-backed chat completion client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	log = log.With().Str("component", "llm-client").Logger()

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")).
		SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(cfg.APIKey) != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	httpClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), requestStartedAt{}, time.Now()))
		return nil
	})
	httpClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
		started, _ := r.Request.Context().Value(requestStartedAt{}).(time.Time)
		log.Debug().
			Str("request_id", platformerrors.RequestIDFromContext(r.Request.Context())).
			Int("status", r.StatusCode()).
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Dur("latency", time.Since(started)).
			Msg("HTTP client request")
		return nil
	})

	return &Client{http: httpClient, log: log}
}

// CreateCompletion sends one non-streaming chat completion request.
func (c *Client) CreateCompletion(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	body := toOpenAIRequest(req)

	var (
		result  openai.ChatCompletionResponse
		failure openai.ErrorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/chat/completions")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("LLM API error: %v", err), err, "6e2d8b1f-3a94-4c7e-b5d0-9f1a2c3e4b01")
	}
	if resp.IsError() {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("LLM API error: %s", providerMessage(resp, &failure)), nil, "6e2d8b1f-3a94-4c7e-b5d0-9f1a2c3e4b02",
			map[string]any{"status": resp.StatusCode()})
	}
	if len(result.Choices) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"LLM API error: response contained no choices", nil, "6e2d8b1f-3a94-4c7e-b5d0-9f1a2c3e4b03")
	}

	model := result.Model
	if model == "" {
		model = body.Model
	}
	return &llm.Completion{
		Content:     result.Choices[0].Message.Content,
		TotalTokens: result.Usage.TotalTokens,
		Model:       model,
	}, nil
}

func toOpenAIRequest(req llm.CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}

func providerMessage(resp *resty.Response, failure *openai.ErrorResponse) string {
	if failure != nil && failure.Error != nil && failure.Error.Message != "" {
		return failure.Error.Message
	}
	if text := strings.TrimSpace(resp.String()); text != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode(), text)
	}
	return fmt.Sprintf("status %d", resp.StatusCode())
}
