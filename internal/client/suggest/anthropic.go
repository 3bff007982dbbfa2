package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/client/schema"
	"github.com/dmitrijs2005/dayscribe/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com/v1/messages"
	DefaultModel     = "claude-sonnet-4-20250514"
	anthropicVersion = "2023-06-01"
	maxTokens        = 1024
	maxErrorBody     = 512
)

// AnthropicConfig configures AnthropicClient. Empty fields fall back to the
// defaults above and http.DefaultClient.
type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// AnthropicClient calls the Anthropic Messages API. It sends exactly one
// request per Suggest call; deadlines come from ctx.
type AnthropicClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     logging.Logger
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func NewAnthropicClient(cfg AnthropicConfig, log logging.Logger) *AnthropicClient {
	c := &AnthropicClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		log:     log.With("component", "suggest"),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.client == nil {
		c.client = http.DefaultClient
	}
	return c
}

// Suggest validates in, sends one request and returns the validated list.
func (c *AnthropicClient) Suggest(ctx context.Context, in Input) (Output, error) {
	in, err := in.Validate()
	if err != nil {
		return Output{}, err
	}
	if c.apiKey == "" {
		return Output{}, ErrUnavailable
	}

	prompt, err := renderPrompt(in)
	if err != nil {
		return Output{}, fmt.Errorf("%w: render prompt: %v", ErrSuggestionFailed, err)
	}

	text, err := c.send(ctx, prompt)
	if err != nil {
		c.log.Warn(ctx, "suggestion request failed", "error", err)
		return Output{}, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}

	tasks, err := parseSuggestions(text)
	if err != nil {
		c.log.Warn(ctx, "malformed suggestion output", "error", err)
		return Output{}, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}

	c.log.Debug(ctx, "suggestions received", "count", len(tasks))
	return Output{SuggestedTasks: tasks}, nil
}

func (c *AnthropicClient) send(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return "", fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, respBody)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	var b strings.Builder
	for _, part := range apiResp.Content {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response (stop_reason %q)", apiResp.StopReason)
	}
	return b.String(), nil
}

// parseSuggestions accepts {"suggestedTasks": [...]} or a bare array,
// optionally wrapped in a markdown code fence.
func parseSuggestions(text string) ([]string, error) {
	cleaned := stripFence(text)
	if strings.HasPrefix(cleaned, "[") {
		cleaned = `{"suggestedTasks":` + cleaned + `}`
	}

	tasks, err := schema.DecodeSuggestions([]byte(cleaned))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

func stripFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	if i := strings.Index(cleaned, "\n"); i >= 0 {
		cleaned = cleaned[i+1:]
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	if i := strings.LastIndex(cleaned, "```"); i >= 0 {
		cleaned = cleaned[:i]
	}
	return strings.TrimSpace(cleaned)
}
