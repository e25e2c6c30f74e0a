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

// registrationHandler handles HTTP requests for customer registration.
type registrationHandler struct {
	registrationService portssvc.RegistrationSvcFacade
	isProduction        bool
}

// newRegistrationHandler creates a new registrationHandler.
func newRegistrationHandler(rs portssvc.RegistrationSvcFacade, isProduction bool) *registrationHandler {
	return &registrationHandler{
		registrationService: rs,
		isProduction:        isProduction,
	}
}

// registerRegistrationRoutes registers the public registration route.
func registerRegistrationRoutes(rg *gin.RouterGroup, registrationService portssvc.RegistrationSvcFacade, isProduction bool) {
	h := newRegistrationHandler(registrationService, isProduction)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/register", h.registerAccount)
	}
}

// registerAccount godoc
// @Summary Register a new customer account
// @Description Creates a telephony subaccount, provisions a phone number near the contact phone's area code and persists the account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   registration body dto.RegisterAccountRequest true "Registration details"
// @Success 201 {object} dto.RegisterAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} dto.RegistrationConflictResponse "Site already registered"
// @Failure 503 {object} dto.ErrorResponse "Telephony provider unavailable"
// @Failure 500 {object} dto.ErrorResponse "Persistence failure"
// @Router /accounts/register [post]
func (h *registrationHandler) registerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("site_identifier", req.SiteIdentifier))
	logger.Info("Received request to register account", slog.String("display_name", req.DisplayName))

	result, err := h.registrationService.RegisterAccount(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logger.Info("Account registered successfully", slog.String("provisioned_number", result.ProvisionedNumber))
	c.JSON(http.StatusCreated, dto.ToRegisterAccountResponse(result))
}

// respondError maps the registration failure taxonomy onto HTTP statuses.
// Raw error text only leaves the process outside production.
func (h *registrationHandler) respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var details string
	if !h.isProduction {
		details = err.Error()
	}

	var dupErr *apperrors.DuplicateSiteError
	switch {
	case errors.As(err, &dupErr):
		logger.Info("Registration conflict", slog.String("existing_token", dupErr.AccountToken))
		c.JSON(http.StatusConflict, dto.RegistrationConflictResponse{
			Error:             "site already registered",
			AccountToken:      dupErr.AccountToken,
			ProvisionedNumber: dupErr.ProvisionedNumber,
			Message:           "this site already has a provisioned number; reuse the returned credentials",
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error registering account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNoInventory):
		logger.Warn("No number inventory for registration")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "no phone numbers available in the requested area",
			Details: details,
		})
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		logger.Error("Telephony provider failure during registration", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "telephony provider unavailable",
			Details: details,
		})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Persistence failure during registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "failed to persist account",
			Details: details,
		})
	default:
		logger.Error("Unexpected failure during registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "registration failed",
			Details: details,
		})
	}
}
