package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSecretRequired     = errors.New("auth: jwt secret required")
	ErrAdminKeyRequired   = errors.New("auth: admin key required")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

type TokenInput struct {
	AdminKey string
	Subject  string
}

type TokenResult struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// Service issues and verifies bearer tokens for the users API. Only a bcrypt
// hash of the admin key is kept.
type Service struct {
	secret  []byte
	ttl     time.Duration
	keyHash []byte
}

func NewService(secret, adminKey string, ttl time.Duration) (*Service, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	adminKey = strings.TrimSpace(adminKey)
	if adminKey == "" {
		return nil, ErrAdminKeyRequired
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		keyHash: hash,
	}, nil
}

// IssueToken signs a token for input.Subject when the admin key matches. An
// empty subject gets a random one.
func (s *Service) IssueToken(ctx context.Context, input TokenInput) (*TokenResult, error) {
	_ = ctx

	if err := bcrypt.CompareHashAndPassword(s.keyHash, []byte(strings.TrimSpace(input.AdminKey))); err != nil {
		return nil, ErrInvalidCredentials
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = uuid.NewString()
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenResult{Token: signed, Subject: subject, ExpiresAt: expiresAt}, nil
}

func (s *Service) VerifyToken(token string) (*jwt.RegisteredClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseAuthorization extracts the token from a "Bearer <token>" header value.
func ParseAuthorization(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
