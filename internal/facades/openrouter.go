package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sbilibin2017/eduai-platform/internal/logger"
)

// Default OpenRouter settings
const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "openai/gpt-oss-20b:free@preset/rrc-eduai"
)

// Models selectable by short name
var modelOptions = map[string]string{
	"gpt3":    "openai/gpt-3.5-turbo",
	"gpt4":    "openai/gpt-4-turbo",
	"claude":  "anthropic/claude-3-haiku",
	"free":    "openai/gpt-3.5-turbo",
	"mistral": "mistralai/mistral-7b-instruct",
}

// CompletionError is an LLM failure with a user-facing message.
type CompletionError struct {
	StatusCode int // upstream status, 0 for transport errors
	Message    string
	Body       string
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openrouter http %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *CompletionError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user.
func (e *CompletionError) UserMessage() string { return e.Message }

// HTTPStatus is the status the API answers with for this failure.
func (e *CompletionError) HTTPStatus() int {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case 0:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func statusError(code int, body string) *CompletionError {
	var msg string
	switch code {
	case http.StatusNotFound:
		msg = "API endpoint not found. Please check the OpenRouter configuration."
	case http.StatusUnauthorized:
		msg = "Authentication failed. Please check your API key."
	case http.StatusTooManyRequests:
		msg = "Rate limit exceeded. Please try again later."
	default:
		msg = fmt.Sprintf("API request failed with status %d", code)
	}
	return &CompletionError{StatusCode: code, Message: msg, Body: body}
}

func networkError(err error) *CompletionError {
	return &CompletionError{
		Message: "Network error. Please check your internet connection and try again.",
		Err:     err,
	}
}

// OpenRouterConfig configures OpenRouterFacade.
type OpenRouterConfig struct {
	URL        string
	APIKey     string
	Model      string
	Referer    string
	Title      string
	Timeout    time.Duration
	MaxRetries int
}

// OpenRouterFacade sends single-prompt chat completions to an OpenRouter compatible endpoint.
type OpenRouterFacade struct {
	httpClient *http.Client
	cfg        OpenRouterConfig
}

func NewOpenRouterFacade(cfg OpenRouterConfig) *OpenRouterFacade {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &OpenRouterFacade{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// ModelFor resolves a short model option; unknown or empty options give the default model.
func (f *OpenRouterFacade) ModelFor(option string) string {
	if m, ok := modelOptions[strings.ToLower(strings.TrimSpace(option))]; ok {
		return m
	}
	return f.cfg.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete runs prompt with the configured model.
func (f *OpenRouterFacade) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithModel(ctx, prompt, f.cfg.Model)
}

// CompleteWithModel runs prompt with an explicit model id.
func (f *OpenRouterFacade) CompleteWithModel(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = f.cfg.Model
	}
	body := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	backoff := 500 * time.Millisecond
	for attempt := 0; ; attempt++ {
		raw, err := f.doOnce(ctx, body)
		if err == nil {
			var resp chatResponse
			if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
				logger.Log.Errorw("unexpected completion response", "model", model, "body", string(raw))
				return "", &CompletionError{Message: "Invalid response format from API", Body: string(raw), Err: err}
			}
			return resp.Choices[0].Message.Content, nil
		}

		var cerr *CompletionError
		if !errors.As(err, &cerr) || !retryable(cerr) || attempt >= f.cfg.MaxRetries {
			logger.Log.Errorw("completion request failed", "model", model, "attempt", attempt+1, "error", err)
			return "", err
		}

		logger.Log.Warnw("completion request retrying",
			"model", model,
			"attempt", attempt+1,
			"max_retries", f.cfg.MaxRetries,
			"sleep", backoff.String(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", networkError(ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func retryable(e *CompletionError) bool {
	if e.StatusCode == 0 {
		return !errors.Is(e.Err, context.Canceled)
	}
	return e.StatusCode >= 500
}

func (f *OpenRouterFacade) doOnce(ctx context.Context, body chatRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.URL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if f.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", f.cfg.Referer)
	}
	if f.cfg.Title != "" {
		req.Header.Set("X-Title", f.cfg.Title)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, string(raw))
	}
	return raw, nil
}

// TestConnection sends a short prompt and reports whether any text came back.
func (f *OpenRouterFacade) TestConnection(ctx context.Context) error {
	out, err := f.Complete(ctx, "Hello, please respond with 'API connection successful'")
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "" {
		return &CompletionError{Message: "Invalid response format from API"}
	}
	return nil
}
