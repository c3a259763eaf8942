// Package memstore implements the store contracts in process memory. It backs
// local development when no MongoDB is configured, and the service tests.
// Data does not survive a restart.
package memstore

import (
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
)

// New returns a fresh, empty store.
func New() *store.Store {
	return &store.Store{
		Notes:    &noteStore{notes: map[string]models.Note{}},
		Users:    &userStore{users: map[string]models.User{}},
		Contacts: &contactStore{},
		Products: &productStore{products: map[string]models.Product{}},
		Projects: &projectStore{projects: map[string]models.Project{}},
	}
}
