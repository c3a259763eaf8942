// Package store defines the document-store access contracts shared by the
// MongoDB backend and the in-memory backend.
package store

import (
	"context"
	"errors"

	"github.com/stackfolio/core/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the filter. Ownership
	// mismatches surface as ErrNotFound too, so callers cannot probe for
	// other users' documents.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert or update violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// NoteFilter selects a user's notes. Owner is mandatory; the remaining
// predicates compose with AND. Results are always sorted pinned-first,
// then by UpdatedAt descending.
type NoteFilter struct {
	Owner        string
	Search       string
	Tag          string
	FavoriteOnly bool
}

// CountFilter narrows Count to flagged subsets.
type CountFilter struct {
	OnlyPinned   bool
	OnlyFavorite bool
}

// NotePatch is a partial update. Nil fields are left untouched.
// ShareToken is applied only when SetShareToken is true; a nil value then
// clears the token.
type NotePatch struct {
	Title         *string
	Content       *string
	Tags          *[]string
	Color         *string
	IsPinned      *bool
	IsFavorite    *bool
	IsPublic      *bool
	ShareToken    *string
	SetShareToken bool
}

// NoteStore is the note collection. Every owner-scoped operation filters by
// both id and owner in a single document operation.
type NoteStore interface {
	Find(ctx context.Context, f NoteFilter) ([]models.Note, error)
	FindShared(ctx context.Context, token string) (*models.Note, error)
	Insert(ctx context.Context, n *models.Note) error
	Update(ctx context.Context, owner, id string, patch NotePatch) (*models.Note, error)
	Delete(ctx context.Context, owner, id string) error
	Count(ctx context.Context, owner string, f CountFilter) (int64, error)
	DistinctTags(ctx context.Context, owner string) ([]string, error)
}

// UserStore is the account collection. Username and email are unique.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*models.User, error)
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Insert(ctx context.Context, m *models.Contact) error
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int
}

// ProductStore is the storefront catalog collection.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProjectPatch is a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Tech        *[]string
	Link        *string
}

// ProjectStore is the portfolio project collection.
type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Insert(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles all collections behind one backend.
type Store struct {
	Notes    NoteStore
	Users    UserStore
	Contacts ContactStore
	Products ProductStore
	Projects ProjectStore
}
