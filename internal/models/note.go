package models

import "time"

// DefaultNoteColor is the color assigned when a draft does not pick one.
const DefaultNoteColor = "#ffffff"

// Note is a user-owned note document.
// ShareToken is non-nil iff IsPublic is true; the store keeps it unique.
type Note struct {
	ID         string    `json:"id"         bson:"_id,omitempty"`
	Owner      string    `json:"-"          bson:"user"`
	Title      string    `json:"title"      bson:"title"`
	Content    string    `json:"content"    bson:"content"`
	Tags       []string  `json:"tags"       bson:"tags"`
	Color      string    `json:"color"      bson:"color"`
	IsPinned   bool      `json:"isPinned"   bson:"isPinned"`
	IsFavorite bool      `json:"isFavorite" bson:"isFavorite"`
	IsPublic   bool      `json:"isPublic"   bson:"isPublic"`
	ShareToken *string   `json:"shareId"    bson:"shareId,omitempty"`
	CreatedAt  time.Time `json:"created"    bson:"createdAt"`
	UpdatedAt  time.Time `json:"modified"   bson:"updatedAt"`
}
