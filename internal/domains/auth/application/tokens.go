package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
)

// ErrUnauthorized covers every token that must be rejected: missing, malformed, expired or of the wrong kind.
var ErrUnauthorized = errors.New("unauthorized")

type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (m *TokenManager) WithClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Issue signs a token of the given kind for userID.
func (m *TokenManager) Issue(userID int64, kind string) (string, error) {
	now := m.now()
	claims := tokenClaims{
		UserID: userID,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(token, kind string) (*ports.Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if claims.Type != kind {
		return nil, fmt.Errorf("%w: token kind %q", ErrUnauthorized, claims.Type)
	}
	return &ports.Claims{UserID: claims.UserID, Kind: claims.Type, ExpiresAt: claims.ExpiresAt.Time}, nil
}

var _ ports.TokenVerifier = (*TokenManager)(nil)
