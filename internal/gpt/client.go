// Package gpt talks to the language models behind the coach: personalized
// lesson scripts, nutrition answers, quiz judging and food lookups.
package gpt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// ChatModel is anything that can complete a chat. Client and
// AnthropicModel both satisfy it.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ErrOffline is returned by Offline.
var ErrOffline = errors.New("gpt: no model configured")

// Offline stands in when no backend is configured. Every call fails, so
// the agent and personalizer fall back to local content.
type Offline struct{}

func (Offline) Chat(context.Context, []Message) (string, error) { return "", ErrOffline }

// ── Messages ─────────────────────────────────────────────────────

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. Content is plain text; the
// coach never sends images.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextMessage builds a Message.
func TextMessage(role, text string) Message { return Message{Role: role, Content: text} }

// Text returns the message body.
func (m Message) Text() string { return m.Content }

// completionRequest is the chat/completions body.
type completionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ── Client ───────────────────────────────────────────────────────

var _ ChatModel = (*Client)(nil)

// DefaultMaxTokens keeps replies short enough to be spoken.
const DefaultMaxTokens = 300

// APIError is a non-200 reply from the endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gpt: API %d: %s", e.Status, truncate(e.Body, 200))
}

// transient reports whether a retry might succeed.
func (e *APIError) transient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetryDelay sets the pause before the single retry of a rate-limited
// or failed request. Zero disables the retry.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.retryDelay = d }
}

// Client talks to an OpenAI-compatible chat-completions endpoint. The key
// goes out both as "api-key" (Azure OpenAI) and as a bearer token.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	retryDelay  time.Duration
	http        *http.Client
	log         *logger.Logger
}

// NewClient creates a chat client for the full chat/completions URL.
func NewClient(endpoint, apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		temperature: 0.7,
		maxTokens:   DefaultMaxTokens,
		retryDelay:  time.Second,
		http:        &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends the conversation and returns the trimmed reply. A 429 or 5xx
// is retried once after the retry delay.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Model:       c.model,
	})
	if err != nil {
		return "", fmt.Errorf("gpt: encode request: %w", err)
	}

	reply, err := c.post(ctx, body)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.transient() && c.retryDelay > 0 {
		c.log.Warn("gpt: %d from endpoint, retrying in %s", apiErr.Status, c.retryDelay)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.retryDelay):
		}
		reply, err = c.post(ctx, body)
	}
	if err != nil {
		return "", err
	}

	c.log.Debug("gpt: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gpt: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("gpt: POST %s (%d bytes)", c.endpoint, len(body))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gpt: post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gpt: read reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gpt: decode reply: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("gpt: no choices: %w", domain.ErrEmptyReply)
	}
	reply := strings.TrimSpace(out.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("gpt: blank content: %w", domain.ErrEmptyReply)
	}
	return reply, nil
}

// truncate shortens s to at most n bytes for logging, cutting on a rune
// boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
