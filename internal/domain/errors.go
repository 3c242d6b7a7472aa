package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternalError      = errors.New("internal error")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category is referenced by budgets")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrEntryNotFound      = errors.New("budget entry not found")
	ErrInvalidPage        = errors.New("invalid page")
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxUsernameLength = 255
	MinPasswordLength = 10
	MaxPasswordLength = 255
)
