// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"errors"

	"github.com/stackfolio/core/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// New wires all collection stores against a connected database.
func New(db *mongo.Database) *store.Store {
	return &store.Store{
		Notes:    &noteStore{c: db.Collection("notes")},
		Users:    &userStore{c: db.Collection("users")},
		Contacts: &contactStore{c: db.Collection("contacts")},
		Products: &productStore{c: db.Collection("products")},
		Projects: &projectStore{c: db.Collection("projects")},
	}
}

// mapErr translates driver errors into store sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}
