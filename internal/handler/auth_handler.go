package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
)

// AuthHandler exchanges credentials for bearer tokens
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// TokenRequest represents the request body for obtaining a token
type TokenRequest struct {
	Username json.RawMessage `json:"username"`
	Password json.RawMessage `json:"password"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// ObtainToken handles POST /auth/token
func (h *AuthHandler) ObtainToken(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, detailInvalidBody, nil)
	}

	verr := domain.NewValidationError()
	in := service.LoginInput{
		Username: decodeString(verr, "username", req.Username),
		Password: decodeString(verr, "password", req.Password),
	}
	if !verr.Empty() {
		return writeServiceError(c, verr)
	}

	result, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC(),
		Username:  result.User.Username,
	})
}
