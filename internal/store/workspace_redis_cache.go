package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/workhive/workhive-api/internal/workspace"
)

// WorkspaceRedisCache wraps a workspace.Repository with Redis caching for
// reads. The rate limit middleware hits the repository on every
// workspace-scoped request to check the internal flag, so reads are cached
// aggressively and writes invalidate through.
type WorkspaceRedisCache struct {
	store  workspace.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewWorkspaceRedisCache creates a new Redis-cached repository decorator.
func NewWorkspaceRedisCache(
	store workspace.Repository, client *redis.Client, ttl time.Duration,
) *WorkspaceRedisCache {
	return &WorkspaceRedisCache{
		store:  store,
		client: client,
		prefix: "ws:",
		ttl:    ttl,
	}
}

// Create stores a workspace in the underlying store and updates the cache.
func (r *WorkspaceRedisCache) Create(ctx context.Context, ws *workspace.Workspace) error {
	if err := r.store.Create(ctx, ws); err != nil {
		return err
	}

	// Write-through: update cache after successful save
	r.cacheWorkspace(ctx, ws)

	return nil
}

// Get retrieves a workspace by id, checking the cache first.
func (r *WorkspaceRedisCache) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	if ws, err := r.getFromCache(ctx, id); err == nil {
		return ws, nil
	}

	// Cache miss - fetch from store
	ws, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheWorkspace(ctx, ws)

	return ws, nil
}

func (r *WorkspaceRedisCache) Update(ctx context.Context, ws *workspace.Workspace) error {
	if err := r.store.Update(ctx, ws); err != nil {
		return err
	}

	r.cacheWorkspace(ctx, ws)

	return nil
}

func (r *WorkspaceRedisCache) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.client.Del(ctx, r.prefix+id).Err()

	return nil
}

func (r *WorkspaceRedisCache) SetInternal(ctx context.Context, id string, internal bool) error {
	if err := r.store.SetInternal(ctx, id, internal); err != nil {
		return err
	}

	// Drop rather than patch the cached entry; the next read repopulates.
	_ = r.client.Del(ctx, r.prefix+id).Err()

	return nil
}

func (r *WorkspaceRedisCache) getFromCache(ctx context.Context, id string) (*workspace.Workspace, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+id).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, workspace.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos)
		}
	}

	internal, _ := strconv.ParseBool(result["internal"])

	return &workspace.Workspace{
		ID:        result["id"],
		Name:      result["name"],
		Plan:      result["plan"],
		Internal:  internal,
		CreatedAt: createdAt,
	}, nil
}

func (r *WorkspaceRedisCache) cacheWorkspace(ctx context.Context, ws *workspace.Workspace) {
	pipe := r.client.Pipeline()
	key := r.prefix + ws.ID

	pipe.HSet(ctx, key, map[string]interface{}{
		"id":         ws.ID,
		"name":       ws.Name,
		"plan":       ws.Plan,
		"internal":   strconv.FormatBool(ws.Internal),
		"created_at": ws.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ workspace.Repository = (*WorkspaceRedisCache)(nil)
