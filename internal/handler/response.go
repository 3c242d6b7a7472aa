package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://budgetbook.app/errors/validation"
	ErrorTypeNotFound     = "https://budgetbook.app/errors/not-found"
	ErrorTypeUnauthorized = "https://budgetbook.app/errors/unauthorized"
	ErrorTypeConflict     = "https://budgetbook.app/errors/conflict"
	ErrorTypeInternal     = "https://budgetbook.app/errors/internal"
)

// Fixed client-facing details
const (
	detailInvalidBody   = "Invalid request body"
	detailNotFound      = "Not found."
	detailInvalidPage   = "Invalid page."
	detailGeneric       = "Something went wrong."
	detailBadLogin      = "Unable to log in with provided credentials."
	detailCategoryInUse = "Cannot delete a category that is used by budgets."
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors converts domain field errors to their wire form
func fieldErrors(verr *domain.ValidationError) []ValidationError {
	out := make([]ValidationError, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, ValidationError{Field: fe.Field, Message: fe.Message})
	}
	return out
}

// writeServiceError maps a service error to its problem response.
// Not-found and unowned records are indistinguishable to the client.
func writeServiceError(c echo.Context, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return NewValidationError(c, "Validation failed", fieldErrors(verr))
	case errors.Is(err, domain.ErrUnauthorized):
		return NewUnauthorizedError(c, "Authentication credentials were not provided.")
	case errors.Is(err, domain.ErrInvalidPage):
		return NewNotFoundError(c, detailInvalidPage)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return NewNotFoundError(c, detailNotFound)
	case errors.Is(err, domain.ErrCategoryInUse):
		return NewConflictError(c, detailCategoryInUse)
	case errors.Is(err, domain.ErrUsernameTaken):
		return NewValidationError(c, detailGeneric, nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return NewValidationError(c, detailBadLogin, []ValidationError{
			{Field: domain.NonFieldErrors, Message: detailBadLogin},
		})
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled service error")
		return NewInternalError(c, detailGeneric)
	}
}

// parseID reads the :id path parameter. A malformed id is reported as not found.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// isPartial reports whether the request is a PATCH
func isPartial(c echo.Context) bool {
	return c.Request().Method == http.MethodPatch
}
