package supabase

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/types"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	body   []byte
}

// fakeRest stands in for the PostgREST endpoint of a Supabase project.
type fakeRest struct {
	mu       sync.Mutex
	requests []recordedRequest
	reply    string
}

func (f *fakeRest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   body,
	})
	reply := f.reply
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if reply == "" {
		reply = "[]"
	}
	_, _ = io.WriteString(w, reply)
}

func (f *fakeRest) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestArchive(t *testing.T, rest *fakeRest) *Archive {
	t.Helper()
	srv := httptest.NewServer(rest)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.Settings{SupabaseURL: srv.URL, SupabaseKey: "anon-key"})
	require.NoError(t, err)
	return NewArchive(client)
}

func TestNewClientRequiresSettings(t *testing.T) {
	_, err := NewClient(config.Settings{})
	assert.Error(t, err)
}

func TestArchiveSaveSession(t *testing.T) {
	rest := &fakeRest{}
	archive := newTestArchive(t, rest)

	session := types.ChatSession{
		ID:        "s1",
		Title:     "Fractions",
		Preview:   "1/2 + 1/3?",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Messages:  []types.Message{{ID: 1, Text: "1/2 + 1/3?", IsSent: true}},
	}
	require.NoError(t, archive.SaveSession(context.Background(), "alice", session))

	req := rest.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.True(t, strings.HasSuffix(req.path, "/"+sessionsTable))

	var rows []sessionRow
	if err := json.Unmarshal(req.body, &rows); err != nil {
		var row sessionRow
		require.NoError(t, json.Unmarshal(req.body, &row))
		rows = []sessionRow{row}
	}
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].UserID)
	assert.Equal(t, "s1", rows[0].ID)
	require.Len(t, rows[0].Messages, 1)
	assert.True(t, rows[0].Messages[0].IsSent)
}

func TestArchiveSaveSessionRequiresUser(t *testing.T) {
	archive := newTestArchive(t, &fakeRest{})
	assert.Error(t, archive.SaveSession(context.Background(), "", types.ChatSession{ID: "s1"}))
}

func TestArchiveDeleteSession(t *testing.T) {
	rest := &fakeRest{}
	archive := newTestArchive(t, rest)

	require.NoError(t, archive.DeleteSession(context.Background(), "alice", "s1"))

	req := rest.last(t)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Contains(t, req.query, "id=eq.s1")
	assert.Contains(t, req.query, "user_id=eq.alice")
}

func TestArchiveLoadSessions(t *testing.T) {
	rest := &fakeRest{reply: `[
		{"id":"new","user_id":"alice","title":"Newest","preview":"hi","timestamp":"2024-05-02T10:00:00Z",
		 "messages":[{"id":1,"text":"hi","isSent":true,"isLoading":false}]},
		{"id":"old","user_id":"alice","title":"Older","preview":"","timestamp":"2024-05-01T10:00:00Z","messages":[]}
	]`}
	archive := newTestArchive(t, rest)

	sessions, err := archive.LoadSessions(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].ID)
	assert.Equal(t, "Newest", sessions[0].Title)
	require.Len(t, sessions[0].Messages, 1)
	assert.True(t, sessions[0].Messages[0].IsSent)

	req := rest.last(t)
	assert.Equal(t, http.MethodGet, req.method)
	assert.Contains(t, req.query, "user_id=eq.alice")
	assert.Contains(t, req.query, "order=timestamp.desc")
}

func TestDecodeRowsRejectsGarbage(t *testing.T) {
	_, err := decodeRows([]byte(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestArchiveSkipsCancelledContext(t *testing.T) {
	rest := &fakeRest{}
	archive := newTestArchive(t, rest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, archive.SaveSession(ctx, "alice", types.ChatSession{ID: "s1"}), context.Canceled)
	assert.ErrorIs(t, archive.DeleteSession(ctx, "alice", "s1"), context.Canceled)
	_, err := archive.LoadSessions(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)

	rest.mu.Lock()
	defer rest.mu.Unlock()
	assert.Empty(t, rest.requests, "nothing is sent once the context is done")
}
