package services

import (
	"context"
	"log/slog"

	"github.com/veloxline/reception_backend/internal/core/domain"
	portsprov "github.com/veloxline/reception_backend/internal/core/ports/providers"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/dto"
)

// chatService implements the ChatSvcFacade interface. It enforces the
// training quota, dispatches to a text backend and records the consumed
// usage. Recording failures do not fail the exchange; the reply was already
// produced.
type chatService struct {
	BaseService
	responder    portsprov.TextResponder
	usage        portssvc.UsageSvcFacade
	defaultModel string
}

// NewChatService creates a new chat service with the provided dependencies
func NewChatService(responder portsprov.TextResponder, usage portssvc.UsageSvcFacade, defaultModel string) portssvc.ChatSvcFacade {
	return &chatService{
		responder:    responder,
		usage:        usage,
		defaultModel: defaultModel,
	}
}

// Ensure chatService implements the ChatSvcFacade interface
var _ portssvc.ChatSvcFacade = (*chatService)(nil)

// Respond brokers one generative-text exchange for an authenticated account.
func (s *chatService) Respond(ctx context.Context, account *domain.Account, req dto.ChatRequest) (*domain.TextReply, error) {
	if err := s.usage.EnsureWithinLimit(account, domain.CounterTraining); err != nil {
		s.LogWarn(ctx, "Training quota reached",
			slog.String("account_token", account.AccountToken))
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	reply, err := s.responder.Respond(ctx, model, req.SystemPrompt, req.Message, req.History)
	if err != nil {
		s.LogError(ctx, err, "Text backend failed", slog.String("model", model))
		return nil, err
	}

	if err := s.usage.Record(ctx, account.AccountToken, domain.CounterTraining); err != nil {
		s.LogError(ctx, err, "Failed to record training interaction")
	}
	if reply.TokensUsed > 0 {
		if err := s.usage.RecordN(ctx, account.AccountToken, domain.CounterTrainingTokens, reply.TokensUsed); err != nil {
			s.LogError(ctx, err, "Failed to record training tokens")
		}
	}

	s.LogInfo(ctx, "Text reply produced",
		slog.String("model", model),
		slog.Int("tokens_used", reply.TokensUsed))
	return reply, nil
}
