package note

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
)

// ErrValidation marks a rejected draft or patch. Handlers map it to 400.
var ErrValidation = errors.New("validation failed")

const (
	topTagLimit      = 5
	recentWindow     = 7 * 24 * time.Hour
	shareTokenBytes  = 16 // 128 bits from crypto/rand
	shareMintRetries = 3
)

type Service struct {
	notes store.NoteStore
	now   func() time.Time
}

func NewService(notes store.NoteStore) *Service {
	return &Service{notes: notes, now: time.Now}
}

// resolveFilter builds the owner-scoped store filter from the caller's list
// predicates. Sorting is fixed by the store and not caller-configurable.
func resolveFilter(actor string, q ListQuery) store.NoteFilter {
	return store.NoteFilter{
		Owner:        actor,
		Search:       strings.TrimSpace(q.Search),
		Tag:          strings.TrimSpace(q.Tag),
		FavoriteOnly: q.FavoriteOnly,
	}
}

// List returns the actor's notes matching the query, pinned first, then most
// recently updated.
func (s *Service) List(ctx context.Context, actor string, q ListQuery) ([]models.Note, error) {
	return s.notes.Find(ctx, resolveFilter(actor, q))
}

func (s *Service) Create(ctx context.Context, actor string, dto *CreateNoteDTO) (*models.Note, error) {
	if strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	color := dto.Color
	if color == "" {
		color = models.DefaultNoteColor
	}

	n := &models.Note{
		Owner:      actor,
		Title:      dto.Title,
		Content:    dto.Content,
		Tags:       tags,
		Color:      color,
		IsPinned:   dto.IsPinned,
		IsFavorite: dto.IsFavorite,
	}
	if err := s.notes.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, actor, id string, dto *UpdateNoteDTO) (*models.Note, error) {
	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if dto.Content != nil && strings.TrimSpace(*dto.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	return s.notes.Update(ctx, actor, id, store.NotePatch{
		Title:      dto.Title,
		Content:    dto.Content,
		Tags:       dto.Tags,
		Color:      dto.Color,
		IsPinned:   dto.IsPinned,
		IsFavorite: dto.IsFavorite,
	})
}

func (s *Service) SetPinned(ctx context.Context, actor, id string, pinned bool) (*models.Note, error) {
	return s.notes.Update(ctx, actor, id, store.NotePatch{IsPinned: &pinned})
}

func (s *Service) SetFavorite(ctx context.Context, actor, id string, favorite bool) (*models.Note, error) {
	return s.notes.Update(ctx, actor, id, store.NotePatch{IsFavorite: &favorite})
}

// SetPublic toggles the share state. Sharing an already-public note keeps the
// existing token so previously issued links stay valid; unsharing clears the
// token, and a later re-share mints a fresh one.
func (s *Service) SetPublic(ctx context.Context, actor, id string, public bool) (*models.Note, error) {
	if !public {
		return s.notes.Update(ctx, actor, id, store.NotePatch{
			IsPublic:      &public,
			SetShareToken: true,
		})
	}

	n, err := s.notes.Update(ctx, actor, id, store.NotePatch{IsPublic: &public})
	if err != nil {
		return nil, err
	}
	if n.ShareToken != nil {
		return n, nil
	}

	for i := 0; i < shareMintRetries; i++ {
		token, err := mintShareToken()
		if err != nil {
			return nil, err
		}
		n, err = s.notes.Update(ctx, actor, id, store.NotePatch{
			ShareToken:    &token,
			SetShareToken: true,
		})
		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		return n, err
	}
	return nil, fmt.Errorf("failed to allocate share token after retries")
}

// ResolveShared looks up a note by its share token. Only notes that are
// still public resolve; everything else is indistinguishable from absence.
func (s *Service) ResolveShared(ctx context.Context, token string) (*models.Note, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	return s.notes.FindShared(ctx, token)
}

func (s *Service) Delete(ctx context.Context, actor, id string) error {
	return s.notes.Delete(ctx, actor, id)
}

func (s *Service) Stats(ctx context.Context, actor string) (*Stats, error) {
	total, err := s.notes.Count(ctx, actor, store.CountFilter{})
	if err != nil {
		return nil, err
	}
	pinned, err := s.notes.Count(ctx, actor, store.CountFilter{OnlyPinned: true})
	if err != nil {
		return nil, err
	}
	favorite, err := s.notes.Count(ctx, actor, store.CountFilter{OnlyFavorite: true})
	if err != nil {
		return nil, err
	}
	tags, err := s.notes.DistinctTags(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalNotes:    total,
		PinnedNotes:   pinned,
		FavoriteNotes: favorite,
		TotalTags:     len(tags),
	}, nil
}

func (s *Service) Analytics(ctx context.Context, actor string) (*Analytics, error) {
	notes, err := s.notes.Find(ctx, store.NoteFilter{Owner: actor})
	if err != nil {
		return nil, err
	}
	// Chronological order, so tag ranking ties break by first use.
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })

	totalWords := 0
	recentCutoff := s.now().Add(-recentWindow)
	notesThisWeek := 0
	counts := map[string]int{}
	firstSeen := map[string]int{}

	for _, n := range notes {
		totalWords += len(strings.Fields(n.Content))
		if n.CreatedAt.After(recentCutoff) {
			notesThisWeek++
		}
		for _, tag := range n.Tags {
			if _, ok := firstSeen[tag]; !ok {
				firstSeen[tag] = len(firstSeen)
			}
			counts[tag]++
		}
	}

	avg := 0
	if len(notes) > 0 {
		// round half away from zero, so 2.5 words per note reports as 3
		avg = int(math.Round(float64(totalWords) / float64(len(notes))))
	}

	return &Analytics{
		TotalWords:      totalWords,
		AvgWordsPerNote: avg,
		TopTags:         topTags(counts, firstSeen),
		NotesThisWeek:   notesThisWeek,
	}, nil
}

// topTags ranks tags by frequency descending; ties keep first-seen order.
func topTags(counts map[string]int, firstSeen map[string]int) []TagCount {
	ranked := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Tag] < firstSeen[ranked[j].Tag]
	})
	if len(ranked) > topTagLimit {
		ranked = ranked[:topTagLimit]
	}
	return ranked
}

// mintShareToken returns an unguessable URL-safe token.
func mintShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
