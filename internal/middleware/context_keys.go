package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/veloxline/reception_backend/internal/core/domain"
)

// accountKey is the key used to store the authenticated account in the Gin context.
const accountKey = contextKey("account")

// GetAccountFromContext retrieves the authenticated account from the Gin context.
// It returns the account and a boolean indicating if it was found.
func GetAccountFromContext(c *gin.Context) (*domain.Account, bool) {
	accountVal, exists := c.Get(string(accountKey))
	if !exists {
		return nil, false
	}

	account, ok := accountVal.(*domain.Account)
	if !ok {
		// This should not happen if the auth middleware sets it correctly.
		return nil, false
	}

	return account, true
}
