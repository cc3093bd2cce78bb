package cache

import (
	"context"
	"fmt"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// CachedRoleIdentityRepository decorates a RoleIdentityRepository with a TTL
// cache. Role identities change rarely (a mapping edit when a ministry is
// renamed) and are read on every officeholder resolution, so a short TTL
// removes most store round trips without a separate invalidation path.
type CachedRoleIdentityRepository struct {
	inner  ports.RoleIdentityRepository
	cache  ports.Cache
	ttl    int
	logger *zap.Logger
}

// NewCachedRoleIdentityRepository creates a caching decorator around inner.
// ttl is in seconds.
func NewCachedRoleIdentityRepository(inner ports.RoleIdentityRepository, cache ports.Cache, ttl int, logger *zap.Logger) ports.RoleIdentityRepository {
	return &CachedRoleIdentityRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByID returns the cached role identity when fresh, otherwise reads
// through to the store. Errors are never cached; a transient store failure
// should not poison subsequent lookups.
func (r *CachedRoleIdentityRepository) GetByID(ctx context.Context, id string) (*valueobjects.RoleIdentity, error) {
	key := roleCacheKey(id)

	if cached, ok := r.cache.Get(ctx, key); ok {
		if role, ok := cached.(*valueobjects.RoleIdentity); ok {
			return role, nil
		}
		// Wrong type means something else wrote this key; drop it.
		_ = r.cache.Delete(ctx, key)
	}

	role, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, role, r.ttl); err != nil {
		r.logger.Warn("Failed to cache role identity",
			zap.String("roleID", id),
			zap.Error(err),
		)
	}
	return role, nil
}

func roleCacheKey(id string) string {
	return fmt.Sprintf("role-identity:%s", id)
}
