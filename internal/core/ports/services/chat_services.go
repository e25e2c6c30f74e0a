package services

import (
	"context"

	"github.com/veloxline/reception_backend/internal/core/domain"
	"github.com/veloxline/reception_backend/internal/dto"
)

// ChatSvcFacade brokers generative-text requests for an authenticated account:
// quota check, backend dispatch by model-name prefix, usage recording.
type ChatSvcFacade interface {
	Respond(ctx context.Context, account *domain.Account, req dto.ChatRequest) (*domain.TextReply, error)
}
