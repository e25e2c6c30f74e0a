package dto

import "github.com/veloxline/reception_backend/internal/core/domain"

// ChatRequest defines one generative-text exchange. Model is optional; when
// empty the configured default model is used.
type ChatRequest struct {
	Model        string               `json:"model"`
	SystemPrompt string               `json:"system_prompt"`
	Message      string               `json:"message" binding:"required"`
	History      []domain.ChatMessage `json:"history"`
}

// ChatResponse is the normalized reply returned to the caller.
type ChatResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text"`
	TokensUsed int    `json:"tokens_used"`
}

// ToChatResponse converts a domain.TextReply to its DTO.
func ToChatResponse(r *domain.TextReply) ChatResponse {
	return ChatResponse{
		Success:    true,
		Text:       r.Text,
		TokensUsed: r.TokensUsed,
	}
}
