package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/service"
)

// UserHandler handles account registration
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username  json.RawMessage `json:"username"`
	Password1 json.RawMessage `json:"password1"`
	Password2 json.RawMessage `json:"password2"`
}

// RegisterResponse is returned after a user is created
type RegisterResponse struct {
	Detail   string `json:"detail"`
	Username string `json:"username"`
}

// Register handles POST /user
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, detailInvalidBody, nil)
	}

	verr := domain.NewValidationError()
	in := domain.RegistrationInput{
		Username:  decodeString(verr, "username", req.Username),
		Password1: decodeString(verr, "password1", req.Password1),
		Password2: decodeString(verr, "password2", req.Password2),
	}
	if !verr.Empty() {
		return writeServiceError(c, verr)
	}

	user, err := h.userService.Register(c.Request().Context(), in)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Detail:   "User created",
		Username: user.Username,
	})
}
