package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
)

// AccountTokenAuth is a middleware that authenticates requests using the
// account token issued at registration, presented as a bearer credential.
// Suspended and cancelled accounts are rejected.
func AccountTokenAuth(accountSvc portssvc.AccountSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		account, err := accountSvc.GetAccountByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid account token"})
				return
			}
			logger.Error("Failed to resolve account token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}

		if account.Status != domain.StatusActive {
			logger.Warn("Rejected non-active account", slog.String("status", string(account.Status)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is " + string(account.Status)})
			return
		}

		c.Set(string(accountKey), account)
		c.Next()
	}
}
