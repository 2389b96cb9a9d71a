// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/usecase"
)

// CachingPropertyRepository decorates a PropertyRepository with Redis caching
// of the list reads. Every write invalidates the whole namespace.
type CachingPropertyRepository struct {
	inner     usecase.PropertyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PropertyRepository = (*CachingPropertyRepository)(nil)

// NewCachingPropertyRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "properties".
// A nil rdb makes every call a pass-through.
func NewCachingPropertyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PropertyRepository, namespace string) *CachingPropertyRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "properties"
	}
	return &CachingPropertyRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns every listing, served from cache when possible.
func (c *CachingPropertyRepository) List(ctx context.Context) ([]entity.Property, error) {
	return c.cached(ctx, c.namespace+":all", func() ([]entity.Property, error) {
		return c.inner.List(ctx)
	})
}

// ListByOwner returns the owner's listings, served from cache when possible.
func (c *CachingPropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	return c.cached(ctx, c.namespace+":owner:"+safe(ownerID), func() ([]entity.Property, error) {
		return c.inner.ListByOwner(ctx, ownerID)
	})
}

// FindByID is not cached.
func (c *CachingPropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByIDAndOwner is not cached.
func (c *CachingPropertyRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	return c.inner.FindByIDAndOwner(ctx, id, ownerID)
}

// Create stores a listing and invalidates cached lists.
func (c *CachingPropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update replaces a listing and invalidates cached lists.
func (c *CachingPropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DeleteByIDAndOwner removes a listing and invalidates cached lists.
func (c *CachingPropertyRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	p, err := c.inner.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return p, nil
}

// UpdatePrice rewrites a headline price and invalidates cached lists.
func (c *CachingPropertyRepository) UpdatePrice(ctx context.Context, id, price string) error {
	if err := c.inner.UpdatePrice(ctx, id, price); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// cached returns the JSON value at key, or loads and stores it.
func (c *CachingPropertyRepository) cached(ctx context.Context, key string, load func() ([]entity.Property, error)) ([]entity.Property, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Property
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate drops every key in the namespace. Failures are logged only.
func (c *CachingPropertyRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPropertyRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
