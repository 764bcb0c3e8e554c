package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
)

// ErrInvalidCredentials is returned for unknown logins and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid login or password")

// Service implements login.
type Service struct {
	users  ports.Repository
	tokens *TokenManager
}

func NewService(users ports.Repository, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, ports.TokenKindAccess)
}

// EnsureUser creates the user or resets its password. Used to bootstrap the admin account.
func (s *Service) EnsureUser(ctx context.Context, login, password string) (*domain.User, error) {
	existing, err := s.users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.CheckPassword(password) {
			return existing, nil
		}
		if err := existing.SetPassword(password); err != nil {
			return nil, err
		}
		return s.users.Save(ctx, existing)
	case errors.Is(err, ports.ErrNotFound):
		user, err := domain.NewUser(login, password)
		if err != nil {
			return nil, err
		}
		return s.users.Save(ctx, user)
	default:
		return nil, err
	}
}

var _ ports.Service = (*Service)(nil)
