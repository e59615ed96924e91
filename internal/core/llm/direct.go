package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chatinsight/chat-insight-bot/internal/platform/config"
)

// directProvider issues completion requests to a user-configured
// OpenAI-compatible chat endpoint. The response is parsed defensively:
// any missing or mis-shaped field is a format error, never a panic.
type directProvider struct {
	cfg         *config.Config
	httpClient  *http.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// directChatRequest is the OpenAI-compatible chat request body.
type directChatRequest struct {
	Model       string              `json:"model"`
	Messages    []directChatMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float32             `json:"temperature,omitempty"`
}

type directChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// directChatResponse is the OpenAI-compatible chat response body.
// Message is a pointer so an absent field is distinguishable from an
// empty one.
type directChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index        int                `json:"index"`
		Message      *directChatMessage `json:"message"`
		FinishReason string             `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type directErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

func newDirectProvider(cfg *config.Config, logger *zerolog.Logger) *directProvider {
	rps := cfg.RateLimitRPS
	if rps == 0 {
		rps = 1
	}

	return &directProvider{
		cfg:         cfg,
		httpClient:  &http.Client{},
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *directProvider) Name() ProviderName {
	return ProviderDirect
}

func (p *directProvider) IsAvailable() bool {
	return p.cfg.DirectConfigured()
}

func (p *directProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("%w: incomplete direct endpoint configuration", ErrProviderNotConfigured)
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf(errRateLimiter, err)
	}

	reqBody := directChatRequest{
		Model: p.cfg.DirectModel,
		Messages: []directChatMessage{
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf(errFmtMarshalRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.DirectBaseURL, &buf)
	if err != nil {
		return nil, fmt.Errorf(errFmtCreateRequest, err)
	}

	httpReq.Header.Set(headerAuthorization, "Bearer "+p.cfg.DirectAPIKey)
	httpReq.Header.Set(headerContentType, contentTypeJSON)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("direct endpoint request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(errFmtReadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.parseAPIError(body, resp.StatusCode)
	}

	return p.extractResponse(body)
}

// parseAPIError extracts error details from a non-200 response.
func (p *directProvider) parseAPIError(body []byte, statusCode int) error {
	var errResp directErrorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error.Message != "" {
		return fmt.Errorf(errFmtAPIWithMessage, ErrAPIFailure, statusCode, errResp.Error.Message)
	}

	return fmt.Errorf(errFmtAPIStatusOnly, ErrAPIFailure, statusCode)
}

// extractResponse normalizes a successful response body, defaulting
// token counters to zero when usage is not reported.
func (p *directProvider) extractResponse(body []byte) (*Response, error) {
	var resp directChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFormat, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response has no choices", ErrProviderFormat)
	}

	msg := resp.Choices[0].Message
	if msg == nil {
		return nil, fmt.Errorf("%w: choice has no message", ErrProviderFormat)
	}

	if msg.Content == "" {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		CompletionText:   msg.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// Ensure directProvider implements Provider interface.
var _ Provider = (*directProvider)(nil)
