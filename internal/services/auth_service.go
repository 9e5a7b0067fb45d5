// Package services – AuthService
//
// This file implements admin authentication: bcrypt credential checking
// against the provisioned user and stateless HS256 session tokens for the
// admin API. The agent-facing endpoints are deliberately unauthenticated
// (server-to-server automation); only the back-office surface goes through
// here.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lia-imoveis/backoffice/internal/domain"
	"github.com/lia-imoveis/backoffice/internal/repo"
)

// SessionClaims is the JWT payload of an admin session.
type SessionClaims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService checks credentials and mints session tokens.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Secret signs session tokens (HS256).
	Secret []byte
	// TTL bounds session lifetime.
	TTL time.Duration

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// NewAuthService constructs an AuthService with a real clock.
func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TTL: ttl, Now: func() time.Time { return time.Now().UTC() }}
}

// Login verifies email/password and returns a signed session token plus the
// authenticated user. Unknown emails and wrong passwords both come back as
// ErrInvalidCredentials; non-admin users are rejected with ErrNotAdmin before
// any token is minted.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if u.Role != domain.RoleAdmin {
		return "", nil, ErrNotAdmin
	}

	now := s.Now()
	claims := SessionClaims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ParseSession validates a session token and returns its claims. Expired,
// malformed, or wrongly signed tokens all fail with ErrInvalidCredentials;
// tokens for non-admin roles fail with ErrNotAdmin.
func ParseSession(token string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	if claims.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return &claims, nil
}
