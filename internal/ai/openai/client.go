package openai

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

	"github.com/spigell/hh-matcher/internal/ai"
	"go.uber.org/zap"
)

const (
	defaultURL     = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "deepseek-ai/DeepSeek-V3"
	defaultTimeout = 60 * time.Second

	maxErrorBody = 512
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chat completion failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Body)
}

// Options configures a Client. Empty values fall back to defaults.
type Options struct {
	URL        string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls an OpenAI-compatible chat completions endpoint.
// Each Complete is a single request: no retries and no caching.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("llm api key is required")
	}

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = defaultURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		url:        url,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
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
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

// Complete sends prompt as a single user message and returns the content of
// the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: text}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}

	if parsed.Usage != nil {
		c.logger.Debug("chat completion usage",
			zap.Int("prompt_tokens", parsed.Usage.PromptTokens),
			zap.Int("completion_tokens", parsed.Usage.CompletionTokens),
			zap.Int("total_tokens", parsed.Usage.TotalTokens),
		)
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

var _ ai.Completer = (*Client)(nil)
