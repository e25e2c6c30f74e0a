package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/core/services"
	"github.com/veloxline/reception_backend/internal/dto"
)

// MockTextResponder is a mock type for the TextResponder interface
type MockTextResponder struct {
	mock.Mock
}

func (m *MockTextResponder) Respond(ctx context.Context, model, systemPrompt, userMessage string, history []domain.ChatMessage) (*domain.TextReply, error) {
	args := m.Called(ctx, model, systemPrompt, userMessage, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TextReply), args.Error(1)
}

func TestChatRespond(t *testing.T) {
	newService := func(responder *MockTextResponder, repo *MockAccountRepository) portssvc.ChatSvcFacade {
		return services.NewChatService(responder, services.NewUsageService(repo), "gpt-4o-mini")
	}

	t.Run("success records usage and tokens", func(t *testing.T) {
		responder := new(MockTextResponder)
		repo := new(MockAccountRepository)
		svc := newService(responder, repo)

		account := accountWithTraining(5, 200)
		responder.On("Respond", mock.Anything, "gpt-4o-mini", "be brief", "hello", mock.Anything).
			Return(&domain.TextReply{Text: "hi", TokensUsed: 42}, nil).Once()
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTraining, 1).
			Return(nil).Once()
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTrainingTokens, 42).
			Return(nil).Once()

		reply, err := svc.Respond(context.Background(), account, dto.ChatRequest{
			SystemPrompt: "be brief",
			Message:      "hello",
		})

		assert.NoError(t, err)
		assert.Equal(t, "hi", reply.Text)
		assert.Equal(t, 42, reply.TokensUsed)
		responder.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("explicit model overrides default", func(t *testing.T) {
		responder := new(MockTextResponder)
		repo := new(MockAccountRepository)
		svc := newService(responder, repo)

		responder.On("Respond", mock.Anything, "deepseek-chat", "", "hola", mock.Anything).
			Return(&domain.TextReply{Text: "hola!", TokensUsed: 0}, nil).Once()
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTraining, 1).
			Return(nil).Once()

		_, err := svc.Respond(context.Background(), accountWithTraining(0, 200), dto.ChatRequest{
			Model:   "deepseek-chat",
			Message: "hola",
		})

		assert.NoError(t, err)
		// Zero tokens reported means no token counter write
		repo.AssertNumberOfCalls(t, "IncrementCounter", 1)
		responder.AssertExpectations(t)
	})

	t.Run("quota reached blocks before dispatch", func(t *testing.T) {
		responder := new(MockTextResponder)
		repo := new(MockAccountRepository)
		svc := newService(responder, repo)

		_, err := svc.Respond(context.Background(), accountWithTraining(200, 200), dto.ChatRequest{
			Message: "hello",
		})

		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
		responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("backend failure leaves counters untouched", func(t *testing.T) {
		responder := new(MockTextResponder)
		repo := new(MockAccountRepository)
		svc := newService(responder, repo)

		responder.On("Respond", mock.Anything, "gpt-4o-mini", "", "hello", mock.Anything).
			Return(nil, apperrors.ErrProviderUnavailable).Once()

		_, err := svc.Respond(context.Background(), accountWithTraining(0, 200), dto.ChatRequest{
			Message: "hello",
		})

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
		repo.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recording failure does not fail the exchange", func(t *testing.T) {
		responder := new(MockTextResponder)
		repo := new(MockAccountRepository)
		svc := newService(responder, repo)

		responder.On("Respond", mock.Anything, "gpt-4o-mini", "", "hello", mock.Anything).
			Return(&domain.TextReply{Text: "hi", TokensUsed: 7}, nil).Once()
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTraining, 1).
			Return(apperrors.ErrPersistence).Once()
		repo.On("IncrementCounter", mock.Anything, "acct-1", domain.CounterTrainingTokens, 7).
			Return(nil).Once()

		reply, err := svc.Respond(context.Background(), accountWithTraining(0, 200), dto.ChatRequest{
			Message: "hello",
		})

		assert.NoError(t, err)
		assert.Equal(t, "hi", reply.Text)
		repo.AssertExpectations(t)
	})
}

