package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veloxline/reception_backend/internal/dto"
	"github.com/veloxline/reception_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to the authenticated account.
type accountHandler struct{}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup) {
	h := &accountHandler{}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getAccount)
	}
}

// getAccount godoc
// @Summary Get the authenticated account
// @Description Returns the account record and usage snapshot for the presented account token
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, ok := middleware.GetAccountFromContext(c)
	if !ok {
		logger.Error("Account not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
