package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
)

type noteStore struct {
	mu    sync.RWMutex
	notes map[string]models.Note
	seq   []string // insertion order, for stable iteration
}

func cloneNote(n models.Note) models.Note {
	n.Tags = slices.Clone(n.Tags)
	if n.ShareToken != nil {
		token := *n.ShareToken
		n.ShareToken = &token
	}
	return n
}

// matchesSearch approximates the Mongo text index: the note matches when any
// whitespace token of the query appears in the title or content,
// case-insensitively.
func matchesSearch(n models.Note, search string) bool {
	haystack := strings.ToLower(n.Title + " " + n.Content)
	for _, token := range strings.Fields(strings.ToLower(search)) {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

func matches(n models.Note, f store.NoteFilter) bool {
	if n.Owner != f.Owner {
		return false
	}
	if f.Search != "" && !matchesSearch(n, f.Search) {
		return false
	}
	if f.Tag != "" && !slices.Contains(n.Tags, f.Tag) {
		return false
	}
	if f.FavoriteOnly && !n.IsFavorite {
		return false
	}
	return true
}

func (s *noteStore) Find(ctx context.Context, f store.NoteFilter) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Note{}
	for _, id := range s.seq {
		if n, ok := s.notes[id]; ok && matches(n, f) {
			out = append(out, cloneNote(n))
		}
	}
	// Single compound sort key: pinned first, then most recently updated.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *noteStore) FindShared(ctx context.Context, token string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.IsPublic && n.ShareToken != nil && *n.ShareToken == token {
			clone := cloneNote(n)
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *noteStore) Insert(ctx context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	n.ID = uuid.New().String()
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes[n.ID] = cloneNote(*n)
	s.seq = append(s.seq, n.ID)
	return nil
}

func (s *noteStore) Update(ctx context.Context, owner, id string, patch store.NotePatch) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || n.Owner != owner {
		return nil, store.ErrNotFound
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = slices.Clone(*patch.Tags)
	}
	if patch.Color != nil {
		n.Color = *patch.Color
	}
	if patch.IsPinned != nil {
		n.IsPinned = *patch.IsPinned
	}
	if patch.IsFavorite != nil {
		n.IsFavorite = *patch.IsFavorite
	}
	if patch.IsPublic != nil {
		n.IsPublic = *patch.IsPublic
	}
	if patch.SetShareToken {
		if patch.ShareToken != nil {
			token := *patch.ShareToken
			n.ShareToken = &token
		} else {
			n.ShareToken = nil
		}
	}
	n.UpdatedAt = time.Now().UTC()
	s.notes[id] = n

	clone := cloneNote(n)
	return &clone, nil
}

func (s *noteStore) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || n.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.notes, id)
	s.seq = slices.DeleteFunc(s.seq, func(v string) bool { return v == id })
	return nil
}

func (s *noteStore) Count(ctx context.Context, owner string, f store.CountFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, n := range s.notes {
		if n.Owner != owner {
			continue
		}
		if f.OnlyPinned && !n.IsPinned {
			continue
		}
		if f.OnlyFavorite && !n.IsFavorite {
			continue
		}
		count++
	}
	return count, nil
}

func (s *noteStore) DistinctTags(ctx context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	tags := []string{}
	for _, id := range s.seq {
		n, ok := s.notes[id]
		if !ok || n.Owner != owner {
			continue
		}
		for _, tag := range n.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}
