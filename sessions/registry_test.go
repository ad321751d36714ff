package sessions

import (
	"clementus360/smarti-ai/types"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameWorkspace(t *testing.T) {
	reg := NewRegistry(time.Hour, nil)
	ctx := context.Background()

	a := reg.Workspace(ctx, "alice")
	b := reg.Workspace(ctx, "bob")
	assert.Same(t, a, reg.Workspace(ctx, "alice"))
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Len())

	reg.Forget("alice")
	assert.NotSame(t, a, reg.Workspace(ctx, "alice"))
}

func TestRegistryWorkspaceExpires(t *testing.T) {
	reg := NewRegistry(20*time.Millisecond, nil)
	ctx := context.Background()

	first := reg.Workspace(ctx, "alice")
	time.Sleep(50 * time.Millisecond)
	assert.NotSame(t, first, reg.Workspace(ctx, "alice"))
}

func TestRegistryRestoresFromArchive(t *testing.T) {
	archive := newMemoryArchive()
	require.NoError(t, archive.SaveSession(context.Background(), "alice", types.ChatSession{
		ID:       "kept",
		Title:    "Fractions",
		Messages: []types.Message{{ID: 1, Text: GreetingText}, {ID: 2, Text: "1/2 + 1/3?", IsSent: true}},
	}))

	reg := NewRegistry(time.Hour, archive)
	store := reg.Workspace(context.Background(), "alice")

	cs, err := store.Get("kept")
	require.NoError(t, err)
	assert.Equal(t, "Fractions", cs.Title)
	assert.Equal(t, "kept", store.ActiveID())
}

func TestRegistryFallsBackWhenArchiveFails(t *testing.T) {
	archive := newMemoryArchive()
	archive.loadErr = errors.New("supabase down")

	reg := NewRegistry(time.Hour, archive)
	store := reg.Workspace(context.Background(), "alice")

	list, _ := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, DefaultTitle, list[0].Title)
	assert.Equal(t, 1, archive.saves, "the seeded session is archived")
}

// blockingArchive holds LoadSessions for one user until released.
type blockingArchive struct {
	*memoryArchive
	blockUser string
	started   chan struct{}
	release   chan struct{}
	loads     atomic.Int32
}

func (a *blockingArchive) LoadSessions(ctx context.Context, userID string) ([]types.ChatSession, error) {
	a.loads.Add(1)
	if userID == a.blockUser {
		close(a.started)
		<-a.release
	}
	return a.memoryArchive.LoadSessions(ctx, userID)
}

func TestRegistrySlowLoadDoesNotBlockOtherUsers(t *testing.T) {
	archive := &blockingArchive{
		memoryArchive: newMemoryArchive(),
		blockUser:     "alice",
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	reg := NewRegistry(time.Hour, archive)
	ctx := context.Background()

	bob := reg.Workspace(ctx, "bob")

	aliceDone := make(chan *Store)
	go func() { aliceDone <- reg.Workspace(ctx, "alice") }()
	<-archive.started

	bobDone := make(chan *Store)
	go func() { bobDone <- reg.Workspace(ctx, "bob") }()
	select {
	case got := <-bobDone:
		assert.Same(t, bob, got)
	case <-time.After(time.Second):
		t.Fatal("cached workspace blocked behind another user's archive load")
	}

	close(archive.release)
	assert.NotNil(t, <-aliceDone)
}

func TestRegistrySharesConcurrentLoads(t *testing.T) {
	archive := &blockingArchive{
		memoryArchive: newMemoryArchive(),
		blockUser:     "alice",
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	reg := NewRegistry(time.Hour, archive)
	ctx := context.Background()

	results := make(chan *Store, 2)
	go func() { results <- reg.Workspace(ctx, "alice") }()
	<-archive.started
	go func() { results <- reg.Workspace(ctx, "alice") }()

	// give the second caller time to join the pending load
	time.Sleep(50 * time.Millisecond)
	close(archive.release)

	first, second := <-results, <-results
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), archive.loads.Load())
}
