package ports

import (
	"context"
	"time"
)

// TokenKindAccess is the only token kind issued by login.
const TokenKindAccess = "access"

// Claims are the verified contents of a bearer token.
type Claims struct {
	UserID    int64
	Kind      string
	ExpiresAt time.Time
}

// Service issues tokens for valid credentials.
type Service interface {
	Login(ctx context.Context, login, password string) (string, error)
}

// TokenVerifier validates bearer tokens for the access gate.
type TokenVerifier interface {
	Verify(token, kind string) (*Claims, error)
}
