package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/stackfolio/core/internal/models"
	jwtpkg "github.com/stackfolio/core/internal/pkg/jwt"
	"github.com/stackfolio/core/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

// Register creates an account and signs a session token for it.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Username: strings.TrimSpace(dto.Username),
		Email:    strings.ToLower(strings.TrimSpace(dto.Email)),
		Password: string(hash),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", errAccountExists
		}
		return nil, "", err
	}

	token, err := jwtpkg.Sign(u.ID, defaultSessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and signs a session token. Unknown emails and
// wrong passwords are reported with distinct internal errors but the same
// wire response.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", errUserNotFound
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", errWrongPassword
	}

	token, err := jwtpkg.Sign(u.ID, defaultSessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
