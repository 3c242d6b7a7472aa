package websocket

import (
	"context"
	"errors"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/token"
)

var (
	// ErrInvalidToken is returned when token validation fails
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when the token subject no longer exists
	ErrUserNotFound = errors.New("user not found")
)

// UserLookup resolves the user behind a token subject
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenVerifier checks a raw bearer token
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*token.Claims, error)
}

// TokenValidator authenticates WebSocket upgrades from the token query parameter
type TokenValidator struct {
	verifier TokenVerifier
	users    UserLookup
}

// NewTokenValidator creates a new TokenValidator
func NewTokenValidator(verifier TokenVerifier, users UserLookup) *TokenValidator {
	return &TokenValidator{verifier: verifier, users: users}
}

// ValidateToken returns the principal the token was issued to
func (v *TokenValidator) ValidateToken(ctx context.Context, raw string) (*domain.Principal, error) {
	claims, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := v.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &domain.Principal{UserID: user.ID, Username: user.Username}, nil
}
