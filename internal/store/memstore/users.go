package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
)

type userStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func (s *userStore) Insert(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u.ID = uuid.New().String()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) UpdateUsername(ctx context.Context, id, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Username == username {
			return nil, store.ErrDuplicate
		}
	}
	u.Username = username
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return &u, nil
}
