package note

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackfolio/core/internal/middleware"
	"github.com/stackfolio/core/internal/pkg/jwt"
	"github.com/stackfolio/core/internal/store/memstore"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(memstore.New().Notes)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"), middleware.Auth())
	return r, svc
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.Sign(userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/notes"},
		{http.MethodGet, "/api/notes/stats"},
		{http.MethodGet, "/api/notes/analytics"},
		{http.MethodPost, "/api/notes"},
		{http.MethodPut, "/api/notes/abc"},
		{http.MethodPut, "/api/notes/abc/pin"},
		{http.MethodPut, "/api/notes/abc/share"},
		{http.MethodDelete, "/api/notes/abc"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRejectsGarbageToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/notes", "Bearer not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := authHeader(t, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/notes", auth,
		`{"title":"hello","content":"world","tags":["a"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello", created["title"])
	assert.NotEmpty(t, created["id"])
	assert.Nil(t, created["shareId"])

	w = doJSON(t, r, http.MethodGet, "/api/notes", auth, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created["id"], listed.Data[0]["id"])
}

func TestCreateMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)
	auth := authHeader(t, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/notes", auth, `{"title":"only title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	r, svc := newTestRouter(t)
	auth := authHeader(t, "alice")

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	// Attempted owner reassignment must bounce at decode.
	w := doJSON(t, r, http.MethodPut, "/api/notes/"+n.ID, auth, `{"user":"mallory"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Share state is not patchable either.
	w = doJSON(t, r, http.MethodPut, "/api/notes/"+n.ID, auth, `{"isPublic":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The note is untouched.
	got, err := svc.List(context.Background(), "alice", ListQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Owner)
	assert.False(t, got[0].IsPublic)
}

func TestUpdateForeignNoteIs404(t *testing.T) {
	r, svc := newTestRouter(t)

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	w := doJSON(t, r, http.MethodPut, "/api/notes/"+n.ID, authHeader(t, "bob"),
		`{"title":"hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Note not found", body["message"])
}

func TestPinValidatesBody(t *testing.T) {
	r, svc := newTestRouter(t)
	auth := authHeader(t, "alice")

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	w := doJSON(t, r, http.MethodPut, "/api/notes/"+n.ID+"/pin", auth, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "isPinned is required")

	w = doJSON(t, r, http.MethodPut, "/api/notes/"+n.ID+"/pin", auth, `{"isPinned":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["isPinned"])
}

func TestSharedRouteIsPublic(t *testing.T) {
	r, svc := newTestRouter(t)
	ctx := context.Background()

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "readme", Content: "c"})
	shared, err := svc.SetPublic(ctx, "alice", n.ID, true)
	require.NoError(t, err)

	// No Authorization header at all.
	w := doJSON(t, r, http.MethodGet, "/api/notes/shared/"+*shared.ShareToken, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "readme", body["title"])
}

func TestSharedRouteUnknownToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/notes/shared/definitely-not-issued", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReturnsNoContent(t *testing.T) {
	r, svc := newTestRouter(t)
	auth := authHeader(t, "alice")

	n := mustCreate(t, svc, "alice", CreateNoteDTO{Title: "t", Content: "c"})

	w := doJSON(t, r, http.MethodDelete, "/api/notes/"+n.ID, auth, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/notes/"+n.ID, auth, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)
	auth := authHeader(t, "alice")

	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "a", Content: "x", IsPinned: true})
	mustCreate(t, svc, "alice", CreateNoteDTO{Title: "b", Content: "x", Tags: []string{"work"}})

	w := doJSON(t, r, http.MethodGet, "/api/notes/stats", auth, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.PinnedNotes)
	assert.Equal(t, 1, stats.TotalTags)
}
