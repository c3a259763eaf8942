package note

import (
	"time"

	"github.com/stackfolio/core/internal/models"
)

type CreateNoteDTO struct {
	Title      string   `json:"title"   binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Tags       []string `json:"tags"`
	Color      string   `json:"color"`
	IsPinned   bool     `json:"isPinned"`
	IsFavorite bool     `json:"isFavorite"`
}

// UpdateNoteDTO is the explicit patch surface. The owner and the share state
// are deliberately absent: ownership is immutable and sharing has its own
// route. Unknown fields are rejected at decode time.
type UpdateNoteDTO struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Color      *string   `json:"color"`
	IsPinned   *bool     `json:"isPinned"`
	IsFavorite *bool     `json:"isFavorite"`
}

type PinDTO struct {
	IsPinned *bool `json:"isPinned" binding:"required"`
}

type FavoriteDTO struct {
	IsFavorite *bool `json:"isFavorite" binding:"required"`
}

type ShareDTO struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// ListQuery carries the optional list predicates from the query string.
type ListQuery struct {
	Search       string
	Tag          string
	FavoriteOnly bool
}

// Stats are the four dashboard counters.
type Stats struct {
	TotalNotes    int64 `json:"totalNotes"`
	PinnedNotes   int64 `json:"pinnedNotes"`
	FavoriteNotes int64 `json:"favoriteNotes"`
	TotalTags     int   `json:"totalTags"`
}

// TagCount is one entry of the tag frequency ranking.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Analytics summarizes writing activity.
type Analytics struct {
	TotalWords      int        `json:"totalWords"`
	AvgWordsPerNote int        `json:"avgWordsPerNote"`
	TopTags         []TagCount `json:"topTags"`
	NotesThisWeek   int        `json:"notesThisWeek"`
}

type noteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	Color      string    `json:"color"`
	IsPinned   bool      `json:"isPinned"`
	IsFavorite bool      `json:"isFavorite"`
	IsPublic   bool      `json:"isPublic"`
	ShareToken *string   `json:"shareId"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

func toResponse(n *models.Note) noteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Tags:       tags,
		Color:      n.Color,
		IsPinned:   n.IsPinned,
		IsFavorite: n.IsFavorite,
		IsPublic:   n.IsPublic,
		ShareToken: n.ShareToken,
		Created:    n.CreatedAt,
		Modified:   n.UpdatedAt,
	}
}
