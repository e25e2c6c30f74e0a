package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portssvc "github.com/veloxline/reception_backend/internal/core/ports/services"
	"github.com/veloxline/reception_backend/internal/dto"
)

// --- Mock RegistrationService ---
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.RegistrationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RegistrationSvcFacade = (*MockRegistrationService)(nil)

// --- Test Suite ---
type RegistrationHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockRegistrationService
}

func (suite *RegistrationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidations()

	suite.router = gin.New()
	suite.mockSvc = new(MockRegistrationService)

	v1 := suite.router.Group("/api/v1")
	registerRegistrationRoutes(v1, suite.mockSvc, false)
}

func (suite *RegistrationHandlerTestSuite) postRegister(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_Success() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "Test Biz",
		ContactPhone:   "(305) 693-3949",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(&domain.RegistrationResult{
			AccountToken:      "new-token",
			ProvisionedNumber: "+13055550100",
			SubaccountID:      "SA123",
		}, nil).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.RegisterAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("new-token", resp.AccountToken)
	suite.Equal("+13055550100", resp.ProvisionedNumber)
	suite.Equal("SA123", resp.SubaccountID)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_MissingDisplayName() {
	w := suite.postRegister(map[string]string{
		"site_identifier": "https://test.biz",
	})

	// Binding rejects the payload before the service is reached
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "RegisterAccount", mock.Anything, mock.Anything)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_SiteIdentifierWithoutScheme() {
	w := suite.postRegister(map[string]string{
		"display_name":    "Test Biz",
		"site_identifier": "test.biz",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "RegisterAccount", mock.Anything, mock.Anything)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_ValidationErrorFromService() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "   ",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_Conflict() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "Test Biz",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(nil, &apperrors.DuplicateSiteError{
			SiteIdentifier:    "https://test.biz",
			AccountToken:      "existing-token",
			ProvisionedNumber: "+17865550100",
		}).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusConflict, w.Code)

	// The existing assignment comes back so the caller can recover it
	var resp dto.RegistrationConflictResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("existing-token", resp.AccountToken)
	suite.Equal("+17865550100", resp.ProvisionedNumber)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_NoInventory() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "Test Biz",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(nil, apperrors.ErrNoInventory).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusServiceUnavailable, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("no phone numbers available in the requested area", resp.Error)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_ProviderUnavailable() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "Test Biz",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(nil, apperrors.ErrProviderUnavailable).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusServiceUnavailable, w.Code)

	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("telephony provider unavailable", resp.Error)
}

func (suite *RegistrationHandlerTestSuite) TestRegisterAccount_PersistenceFailure() {
	reqBody := dto.RegisterAccountRequest{
		DisplayName:    "Test Biz",
		SiteIdentifier: "https://test.biz",
	}

	suite.mockSvc.On("RegisterAccount", mock.Anything, reqBody).
		Return(nil, apperrors.ErrPersistence).Once()

	w := suite.postRegister(reqBody)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestRegistrationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerTestSuite))
}
