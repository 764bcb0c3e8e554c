package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/domain"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	// Save inserts or updates by login.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
