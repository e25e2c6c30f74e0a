package llmtext

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
)

// Backend is a single chat-completion backend. Both the stock OpenAI API and
// any OpenAI-compatible alternative are served by this one implementation;
// only the API key and base URL differ.
type Backend struct {
	client  *openai.Client
	timeout time.Duration
}

// NewBackend builds a backend against the given endpoint. An empty baseURL
// targets the stock OpenAI API.
func NewBackend(apiKey, baseURL string, timeout time.Duration) *Backend {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Backend{
		client:  openai.NewClientWithConfig(config),
		timeout: timeout,
	}
}

// Ensure Backend implements the responder port
var _ portsprov.TextResponder = (*Backend)(nil)

// Respond runs one non-streaming chat completion and normalizes the reply.
func (b *Backend) Respond(ctx context.Context, model, systemPrompt, userMessage string, history []domain.ChatMessage) (*domain.TextReply, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion: %v", apperrors.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: chat completion returned no choices", apperrors.ErrProviderUnavailable)
	}

	return &domain.TextReply{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
