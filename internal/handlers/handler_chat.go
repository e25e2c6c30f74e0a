package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veloxline/reception_backend/internal/apperrors"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/dto"
	"github.com/veloxline/reception_backend/internal/middleware"
)

// chatHandler handles generative-text requests for authenticated accounts.
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

// newChatHandler creates a new chatHandler.
func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{chatService: cs}
}

// registerChatRoutes registers routes for generative-text exchange.
func registerChatRoutes(rg *gin.RouterGroup, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)
	rg.POST("/respond", h.respond)
}

// respond godoc
// @Summary Produce a generative-text reply
// @Description Dispatches the message to a text backend chosen by model-name prefix and records usage
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   chat body dto.ChatRequest true "Chat exchange"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} dto.ErrorResponse "Quota exceeded"
// @Failure 503 {object} dto.ErrorResponse "Text backend unavailable"
// @Security BearerAuth
// @Router /respond [post]
func (h *chatHandler) respond(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, ok := middleware.GetAccountFromContext(c)
	if !ok {
		logger.Error("Account not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Respond", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	reply, err := h.chatService.Respond(c.Request.Context(), account, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuotaExceeded):
			logger.Warn("Training quota exceeded")
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "training quota exceeded for this billing period"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error for chat", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrProviderUnavailable):
			logger.Error("Text backend failure", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "text backend unavailable"})
		default:
			logger.Error("Failed to produce text reply", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to produce reply"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChatResponse(reply))
}
