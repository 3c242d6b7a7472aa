package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// TokenIssuer signs bearer tokens
type TokenIssuer interface {
	Issue(userID int64, username string) (string, time.Time, error)
}

// LoginInput is the decoded token request
type LoginInput struct {
	Username *string
	Password *string
}

// TokenResult is an issued bearer token
type TokenResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService exchanges credentials for bearer tokens
type AuthService struct {
	userRepo domain.UserRepository
	issuer   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, issuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// Login checks the credentials and issues a token.
// Unknown users and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResult, error) {
	verr := domain.NewValidationError()
	if in.Username == nil {
		verr.Add("username", domain.MsgRequired)
	} else if *in.Username == "" {
		verr.Add("username", domain.MsgBlank)
	}
	if in.Password == nil {
		verr.Add("password", domain.MsgRequired)
	} else if *in.Password == "" {
		verr.Add("password", domain.MsgBlank)
	}
	if !verr.Empty() {
		return nil, verr
	}

	user, err := s.userRepo.GetByUsername(ctx, *in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPassword(user.PasswordHash, *in.Password) {
		log.Info().Int64("user_id", user.ID).Msg("Login rejected: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	raw, expiresAt, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Time("expires_at", expiresAt).Msg("Token issued")
	return &TokenResult{Token: raw, ExpiresAt: expiresAt, User: user}, nil
}
