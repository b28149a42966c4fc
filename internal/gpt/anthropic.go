package gpt

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// DefaultAnthropicModel is the fast Claude model used for lesson scripts.
const DefaultAnthropicModel = "claude-3-haiku-20240307"

var _ ChatModel = (*AnthropicModel)(nil)

// AnthropicModel adapts a langchaingo model to ChatModel.
type AnthropicModel struct {
	llm       llms.Model
	maxTokens int
	log       *logger.Logger
}

// NewAnthropicModel builds a Claude-backed model. An empty model name
// selects DefaultAnthropicModel.
func NewAnthropicModel(apiKey, model string, log *logger.Logger) (*AnthropicModel, error) {
	if model == "" {
		model = DefaultAnthropicModel
	}
	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create client: %w", err)
	}
	return WrapModel(llm, log), nil
}

// WrapModel adapts any langchaingo model.
func WrapModel(llm llms.Model, log *logger.Logger) *AnthropicModel {
	return &AnthropicModel{llm: llm, maxTokens: DefaultMaxTokens, log: log}
}

// Chat converts the messages and returns the first choice.
func (m *AnthropicModel) Chat(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.TextParts(chatRole(msg.Role), msg.Text()))
	}

	m.log.Debug("anthropic: generating (%d messages)", len(content))
	resp, err := m.llm.GenerateContent(ctx, content, llms.WithMaxTokens(m.maxTokens))
	if err != nil {
		return "", fmt.Errorf("anthropic: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("anthropic: empty response (no choices)")
	}

	reply := resp.Choices[0].Content
	m.log.Debug("anthropic: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

func chatRole(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
