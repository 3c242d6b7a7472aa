// Package token issues and verifies the HS256 bearer tokens used by the API.
package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	jose "gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"
)

// MinSecretLength is the minimum HS256 key size in bytes
const MinSecretLength = 32

var (
	// ErrInvalidToken is returned when a token fails verification
	ErrInvalidToken = errors.New("invalid token")
	// ErrWeakSecret is returned when the signing secret is too short
	ErrWeakSecret = errors.New("token secret must be at least 32 bytes")
)

// Claims is the identity carried by a verified token
type Claims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// CustomClaims are the private claims added to every token
type CustomClaims struct {
	Username string `json:"username"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Issuer signs new tokens
type Issuer struct {
	signer   jose.Signer
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewIssuer creates an Issuer signing with secret
func NewIssuer(secret []byte, issuer, audience string, ttl time.Duration) (*Issuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	return &Issuer{
		signer:   signer,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue returns a signed token for the user and its expiry
func (i *Issuer) Issue(userID int64, username string) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	raw, err := jwt.Signed(i.signer).
		Claims(jwt.Claims{
			Subject:  strconv.FormatInt(userID, 10),
			Issuer:   i.issuer,
			Audience: jwt.Audience{i.audience},
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(expiresAt),
		}).
		Claims(CustomClaims{Username: username}).
		CompactSerialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return raw, expiresAt, nil
}

// Verifier checks tokens produced by an Issuer with the same secret
type Verifier struct {
	validator *validator.Validator
}

// NewVerifier creates a Verifier for secret, issuer and audience
func NewVerifier(secret []byte, issuer, audience string) (*Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	v, err := validator.New(
		keyFunc,
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}
	return &Verifier{validator: v}, nil
}

// Verify validates raw and returns its claims
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims, err := v.validator.ValidateToken(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(validated.RegisteredClaims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}

	result := &Claims{
		UserID:    userID,
		ExpiresAt: time.Unix(validated.RegisteredClaims.Expiry, 0).UTC(),
	}
	if custom, ok := validated.CustomClaims.(*CustomClaims); ok {
		result.Username = custom.Username
	}
	return result, nil
}
