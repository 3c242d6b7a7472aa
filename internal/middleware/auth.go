package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey contextKey = "principal"
)

// TokenVerifier checks bearer tokens
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*token.Claims, error)
}

// UserProvider resolves the user a token was issued to
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware authenticates requests carrying an "Authorization: Bearer" header
type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserProvider
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, users UserProvider) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate rejects requests without a valid bearer token
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return m.authenticate(true)
}

// OptionalAuthenticate lets requests without an Authorization header through as anonymous.
// A header that is present but invalid is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate() echo.MiddlewareFunc {
	return m.authenticate(false)
}

func (m *AuthMiddleware) authenticate(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return unauthorizedError(c, "Authentication credentials were not provided.")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthorizedError(c, "Invalid authorization header format.")
			}

			ctx := c.Request().Context()
			claims, err := m.verifier.Verify(ctx, parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "Invalid token.")
			}

			user, err := m.users.GetByID(ctx, claims.UserID)
			if err != nil {
				log.Debug().Err(err).Int64("user_id", claims.UserID).Msg("User lookup failed")
				return unauthorizedError(c, "User not found.")
			}

			principal := &domain.Principal{UserID: user.ID, Username: user.Username}
			c.SetRequest(c.Request().WithContext(context.WithValue(ctx, PrincipalKey, principal)))
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated principal, or nil for anonymous requests
func GetPrincipal(c echo.Context) *domain.Principal {
	if p, ok := c.Request().Context().Value(PrincipalKey).(*domain.Principal); ok {
		return p
	}
	return nil
}
