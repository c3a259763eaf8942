package note

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
	"github.com/stackfolio/core/internal/store/memstore"
)

func newTestService() *Service {
	return NewService(memstore.New().Notes)
}

func mustCreate(t *testing.T, svc *Service, actor string, dto CreateNoteDTO) *models.Note {
	t.Helper()
	n, err := svc.Create(context.Background(), actor, &dto)
	require.NoError(t, err)
	return n
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()
	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "hello", Content: "world"})

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "alice", n.Owner)
	assert.Equal(t, []string{}, n.Tags)
	assert.Equal(t, models.DefaultNoteColor, n.Color)
	assert.False(t, n.IsPinned)
	assert.False(t, n.IsFavorite)
	assert.False(t, n.IsPublic)
	assert.Nil(t, n.ShareToken)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", &CreateNoteDTO{Title: "", Content: "body"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "alice", &CreateNoteDTO{Title: "title", Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	notes, err := svc.List(ctx, "alice", ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes, "failed creates must persist nothing")
}

func TestListIsOwnerScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mine := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "mine", Content: "x"})
	mustCreate(t, svc, "bob", CreateNoteDTO{Title: "theirs", Content: "y"})

	notes, err := svc.List(ctx, "alice", ListQuery{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, mine.ID, notes[0].ID)

	notes, err = svc.List(ctx, "carol", ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestListOrderPinnedFirstThenRecency(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "x"})
	b := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "x"})
	c := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "c", Content: "x"})

	// Pin the oldest, then touch b so it outranks c within the unpinned group.
	_, err := svc.SetPinned(ctx, "alice", a.ID, true)
	require.NoError(t, err)
	newTitle := "b2"
	_, err = svc.Update(ctx, "alice", b.ID, &UpdateNoteDTO{Title: &newTitle})
	require.NoError(t, err)

	notes, err := svc.List(ctx, "alice", ListQuery{})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, a.ID, notes[0].ID)
	assert.Equal(t, b.ID, notes[1].ID)
	assert.Equal(t, c.ID, notes[2].ID)

	for i := 1; i < len(notes); i++ {
		if notes[i-1].IsPinned == notes[i].IsPinned {
			assert.False(t, notes[i-1].UpdatedAt.Before(notes[i].UpdatedAt),
				"updatedAt must be non-increasing within a pin group")
		} else {
			assert.True(t, notes[i-1].IsPinned, "pinned notes must precede unpinned")
		}
	}
}

func TestListFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	groceries := mustCreate(t, svc, "alice", CreateNoteDTO{
		Title: "Groceries", Content: "buy milk and eggs", Tags: []string{"home"},
	})
	work := mustCreate(t, svc, "alice", CreateNoteDTO{
		Title: "Standup", Content: "discuss deploy plan", Tags: []string{"work"}, IsFavorite: true,
	})

	notes, err := svc.List(ctx, "alice", ListQuery{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, groceries.ID, notes[0].ID)

	notes, err = svc.List(ctx, "alice", ListQuery{Tag: "work"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, work.ID, notes[0].ID)

	notes, err = svc.List(ctx, "alice", ListQuery{FavoriteOnly: true})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, work.ID, notes[0].ID)

	// Predicates compose with AND.
	notes, err = svc.List(ctx, "alice", ListQuery{Search: "milk", FavoriteOnly: true})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUpdateOwnershipIndistinguishableFromAbsence(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})
	title := "stolen"

	_, err := svc.Update(ctx, "bob", n.ID, &UpdateNoteDTO{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Update(ctx, "alice", "no-such-id", &UpdateNoteDTO{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.SetPinned(ctx, "bob", n.ID, true)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.SetFavorite(ctx, "bob", n.ID, true)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(ctx, "bob", n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateAppliesPatchAndRefreshesModified(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	title := "new title"
	tags := []string{"a", "b"}
	pinned := true
	updated, err := svc.Update(ctx, "alice", n.ID, &UpdateNoteDTO{
		Title: &title, Tags: &tags, IsPinned: &pinned,
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "c", updated.Content, "unset fields stay untouched")
	assert.Equal(t, []string{"a", "b"}, updated.Tags)
	assert.True(t, updated.IsPinned)
	assert.False(t, updated.UpdatedAt.Before(n.UpdatedAt))
}

func TestDeleteIsPermanent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})
	require.NoError(t, svc.Delete(ctx, "alice", n.ID))

	err := svc.Delete(ctx, "alice", n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "repeated delete surfaces the same error")

	notes, err := svc.List(ctx, "alice", ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestShareRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	shared, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)
	require.NotNil(t, shared.ShareToken)
	assert.True(t, shared.IsPublic)
	token := *shared.ShareToken
	assert.GreaterOrEqual(t, len(token), 20, "token must carry at least 120 bits")

	resolved, err := svc.ResolveShared(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, n.ID, resolved.ID)
	assert.Equal(t, shared.Title, resolved.Title)

	// Unshare invalidates the link.
	unshared, err := svc.SetPublic(ctx, "alice", n.ID, false)
	require.NoError(t, err)
	assert.False(t, unshared.IsPublic)
	assert.Nil(t, unshared.ShareToken)

	_, err = svc.ResolveShared(ctx, token)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReshareKeepsToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	first, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)
	second, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)
	assert.Equal(t, *first.ShareToken, *second.ShareToken, "re-sharing must not break issued links")
}

func TestReshareAfterUnshareMintsFreshToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	first, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)
	_, err = svc.SetPublic(ctx, "alice", n.ID, false)
	require.NoError(t, err)
	second, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)

	assert.NotEqual(t, *first.ShareToken, *second.ShareToken,
		"a new visibility epoch never reuses the old token")
}

func TestShareOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})
	_, err := svc.SetPublic(ctx, "bob", n.ID, true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStats(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "x", IsPinned: true, Tags: []string{"work"}})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "x", IsFavorite: true, Tags: []string{"home"}})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "c", Content: "x", IsFavorite: true, Tags: []string{"work"}})
	mustCreate(t, svc, "bob", CreateNoteDTO{Title: "d", Content: "x", Tags: []string{"other"}})

	stats, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.PinnedNotes)
	assert.Equal(t, int64(2), stats.FavoriteNotes)
	assert.Equal(t, 2, stats.TotalTags)
}

func TestAnalyticsWordCountsAndRounding(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "a b c"})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "d e"})

	a, err := svc.Analytics(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, a.TotalWords)
	assert.Equal(t, 3, a.AvgWordsPerNote, "2.5 rounds half up to 3")
	assert.Equal(t, 2, a.NotesThisWeek)
}

func TestAnalyticsEmpty(t *testing.T) {
	svc := newTestService()

	a, err := svc.Analytics(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, a.TotalWords)
	assert.Equal(t, 0, a.AvgWordsPerNote)
	assert.Equal(t, 0, a.NotesThisWeek)
	assert.Empty(t, a.TopTags)
}

func TestAnalyticsTopTags(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "x", Tags: []string{"x", "x", "y"}})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "x", Tags: []string{"x", "z"}})

	a, err := svc.Analytics(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, a.TopTags, 3)
	assert.Equal(t, TagCount{Tag: "x", Count: 3}, a.TopTags[0])
	assert.Equal(t, TagCount{Tag: "y", Count: 1}, a.TopTags[1], "ties break by first-seen order")
	assert.Equal(t, TagCount{Tag: "z", Count: 1}, a.TopTags[2])
}

func TestAnalyticsTopTagsTruncatedToFive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "alice", CreateNoteDTO{
		Title: "a", Content: "x",
		Tags: []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"},
	})

	a, err := svc.Analytics(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, a.TopTags, 5)
}

func TestAnalyticsWeekWindow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "x"})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "x"})

	// Evaluate eight days in the future; both notes fall out of the window.
	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	a, err := svc.Analytics(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, a.NotesThisWeek)
}

func TestMintShareTokenIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 256; i++ {
		token, err := mintShareToken()
		require.NoError(t, err)
		assert.Len(t, token, 22) // 16 bytes, base64 raw-url
		assert.False(t, seen[token])
		seen[token] = true
	}
}
