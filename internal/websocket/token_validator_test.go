package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/token"
)

type stubVerifier struct {
	claims *token.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, raw string) (*token.Claims, error) {
	return s.claims, s.err
}

type stubUsers struct {
	users map[int64]*domain.User
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func TestTokenValidator_ValidateToken(t *testing.T) {
	users := &stubUsers{users: map[int64]*domain.User{5: {ID: 5, Username: "alice"}}}

	t.Run("valid token of existing user", func(t *testing.T) {
		v := NewTokenValidator(&stubVerifier{claims: &token.Claims{UserID: 5}}, users)
		principal, err := v.ValidateToken(context.Background(), "raw")
		require.NoError(t, err)
		assert.Equal(t, &domain.Principal{UserID: 5, Username: "alice"}, principal)
	})

	t.Run("invalid token", func(t *testing.T) {
		v := NewTokenValidator(&stubVerifier{err: token.ErrInvalidToken}, users)
		_, err := v.ValidateToken(context.Background(), "raw")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		v := NewTokenValidator(&stubVerifier{claims: &token.Claims{UserID: 99}}, users)
		_, err := v.ValidateToken(context.Background(), "raw")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
