package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users in memory keyed by login.
type Repository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}, now: time.Now}
}

func (r *Repository) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[login]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Login == "" {
		return nil, domain.ErrEmptyLogin
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	timestamp := r.now()
	if existing, ok := r.users[clone.Login]; ok {
		clone.ID = existing.ID
		clone.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = timestamp
	}
	clone.UpdatedAt = timestamp
	r.users[clone.Login] = &clone
	out := clone
	return &out, nil
}
