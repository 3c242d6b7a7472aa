package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// UserService handles registration and user lookup
type UserService struct {
	userRepo domain.UserRepository
	hashCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register validates the payload and creates the user.
// A taken username is reported as domain.ErrUsernameTaken without a field hint.
func (s *UserService) Register(ctx context.Context, in domain.RegistrationInput) (*domain.User, error) {
	verr := domain.NewValidationError()
	password1 := validatePassword(verr, "password1", in.Password1)
	password2 := validatePassword(verr, "password2", in.Password2)
	username := validateUsername(verr, in.Username)
	if !verr.Empty() {
		return nil, verr
	}

	// Cross-field check only runs once every field is valid
	if password1 != password2 {
		verr.Add(domain.NonFieldErrors, "Password does not match!")
		return nil, verr
	}

	hash, err := hashPassword(password1, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			log.Info().Str("username", username).Msg("Registration rejected: username taken")
			return nil, err
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// GetByID retrieves a user by id
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func validateUsername(verr *domain.ValidationError, value *string) string {
	if value == nil {
		verr.Add("username", domain.MsgRequired)
		return ""
	}
	username := strings.TrimSpace(*value)
	switch {
	case username == "":
		verr.Add("username", domain.MsgBlank)
	case utf8.RuneCountInString(username) > domain.MaxUsernameLength:
		verr.Addf("username", "Ensure this field has no more than %d characters.", domain.MaxUsernameLength)
	}
	return username
}

// Passwords are compared as sent; surrounding whitespace is significant
func validatePassword(verr *domain.ValidationError, field string, value *string) string {
	if value == nil {
		verr.Add(field, domain.MsgRequired)
		return ""
	}
	password := *value
	length := utf8.RuneCountInString(password)
	switch {
	case strings.TrimSpace(password) == "":
		verr.Add(field, domain.MsgBlank)
	case length < domain.MinPasswordLength:
		verr.Addf(field, "Ensure this field has at least %d characters.", domain.MinPasswordLength)
	case length > domain.MaxPasswordLength:
		verr.Addf(field, "Ensure this field has no more than %d characters.", domain.MaxPasswordLength)
	}
	return password
}
