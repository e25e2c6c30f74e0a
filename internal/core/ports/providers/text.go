package providers

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
)

// TextResponder produces a generative-text reply for one user message given a
// system prompt and prior conversation turns. Both backends return the same
// normalized shape.
type TextResponder interface {
	Respond(ctx context.Context, model, systemPrompt, userMessage string, history []domain.ChatMessage) (*domain.TextReply, error)
}
