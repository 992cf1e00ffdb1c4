package auth

import (
	"context"
	"time"

	"datatable-backend/internal/cache"
	"datatable-backend/internal/permission"
)

type cachedUser struct {
	ID     string   `json:"id"`
	Role   string   `json:"role"`
	Grants []string `json:"grants"`
}

// CachedResolver memoizes another resolver's results in the shared cache.
type CachedResolver struct {
	next  permission.Resolver
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedResolver(next permission.Resolver, c cache.Cache, ttl time.Duration) *CachedResolver {
	return &CachedResolver{next: next, cache: c, ttl: ttl}
}

func permKey(userID string) string {
	return "perm:" + userID
}

func (r *CachedResolver) Resolve(ctx context.Context, userID string) (*permission.User, error) {
	var cu cachedUser
	if found, err := r.cache.Get(ctx, permKey(userID), &cu); err == nil && found {
		return &permission.User{ID: cu.ID, Role: cu.Role, Grants: permission.NewGrants(cu.Grants...)}, nil
	}

	u, err := r.next.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	// A cache failure only costs the next lookup.
	_ = r.cache.Set(ctx, permKey(userID), cachedUser{ID: u.ID, Role: u.Role, Grants: u.Grants.List()}, r.ttl)
	return u, nil
}

// Invalidate forgets the cached grants of the given users.
func (r *CachedResolver) Invalidate(ctx context.Context, userIDs ...string) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = permKey(id)
	}
	return r.cache.Delete(ctx, keys...)
}

// InvalidateAll forgets every cached grant set.
func (r *CachedResolver) InvalidateAll(ctx context.Context) error {
	return r.cache.DeletePrefix(ctx, "perm:")
}
