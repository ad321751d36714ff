package sessions

import (
	"clementus360/smarti-ai/config"
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const minCleanupInterval = time.Minute

// Registry maps a signed-in user to their Store. Idle workspaces expire after
// the configured TTL; every access pushes the expiry back.
type Registry struct {
	cache   *cache.Cache
	loads   singleflight.Group
	archive Archive
}

func NewRegistry(ttl time.Duration, archive Archive) *Registry {
	cleanup := max(ttl/2, minCleanupInterval)
	return &Registry{
		cache:   cache.New(ttl, cleanup),
		archive: archive,
	}
}

// Workspace returns the user's store, restoring it from the archive or
// seeding a fresh one on first access. Concurrent first accesses for the
// same user share one archive load; other users are never blocked by it.
func (r *Registry) Workspace(ctx context.Context, userID string) *Store {
	if store, ok := r.cached(userID); ok {
		return store
	}

	v, _, _ := r.loads.Do(userID, func() (any, error) {
		if store, ok := r.cached(userID); ok {
			return store, nil
		}
		// shared by every waiting caller, so not tied to this one's cancellation
		store := r.open(context.WithoutCancel(ctx), userID)
		r.cache.Set(userID, store, cache.DefaultExpiration)
		return store, nil
	})
	return v.(*Store)
}

// Forget drops a user's workspace from memory. Archived sessions remain.
func (r *Registry) Forget(userID string) {
	r.cache.Delete(userID)
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

func (r *Registry) cached(userID string) (*Store, bool) {
	x, found := r.cache.Get(userID)
	if !found {
		return nil, false
	}
	store := x.(*Store)
	r.cache.Set(userID, store, cache.DefaultExpiration)
	return store, true
}

func (r *Registry) open(ctx context.Context, userID string) *Store {
	if r.archive == nil {
		return NewStore(userID, nil)
	}

	archived, err := r.archive.LoadSessions(ctx, userID)
	if err != nil {
		config.Logger.Warn("Failed to load archived sessions, starting fresh:", err)
		archived = nil
	}
	return RestoreStore(userID, r.archive, archived)
}
