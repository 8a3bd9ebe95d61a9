package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/service"
	"bizdocs/mocks"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	authSvc.On("Login", mock.Anything, service.LoginInput{
		TenantSlug: "acme",
		Email:      "admin@acme.test",
		Password:   "password123",
	}).Return(&service.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now()}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "acme",
		"email":       "admin@acme.test",
		"password":    "password123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	c, w := newJSONContext(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	authSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	c, w := newJSONContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "acme",
		"email":       "admin@acme.test",
		"password":    "wrong-password",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeResponse(t, w).Error.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	authSvc.On("RefreshToken", mock.Anything, "stale").Return(nil, domain.ErrUnauthorized)

	c, w := newJSONContext(http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "stale"})
	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
