package auth

import (
	"context"
	"errors"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) Service {
	return &service{users: users}
}

// Authenticate resolves the user and compares the bcrypt hash. Unknown
// usernames, bad passwords and deactivated accounts all come back as
// ErrInvalidCredentials so the login screen leaks nothing.
func (s *service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword is used by the user service on create/update.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
