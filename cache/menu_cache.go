package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurante-api/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	listaCachePrefix = "productos:v:"
	versionKey       = "productos:version"

	// DefaultTTL bounds staleness even if an invalidation is missed.
	DefaultTTL = 5 * time.Minute
)

// MenuCache is a versioned Redis cache for product listings. Catalog
// mutations bump the version, orphaning every key written under the old
// one. A nil *MenuCache is valid and disables caching.
type MenuCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMenuCache(client *redis.Client) *MenuCache {
	if client == nil {
		return nil
	}
	return &MenuCache{redis: client, ttl: DefaultTTL}
}

// GetProductos returns the cached listing for a category (0 = all) if present.
func (m *MenuCache) GetProductos(ctx context.Context, categoriaID uint) ([]models.Producto, bool) {
	if m == nil {
		return nil, false
	}
	version, err := m.version(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := m.redis.Get(ctx, m.listKey(version, categoriaID)).Result()
	if err != nil {
		return nil, false
	}

	var productos []models.Producto
	if err := json.Unmarshal([]byte(data), &productos); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return productos, true
}

// SetProductosAsync caches a listing in the background.
func (m *MenuCache) SetProductosAsync(categoriaID uint, productos []models.Producto) {
	if m == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := m.version(bgCtx)
		if err != nil || version == 0 {
			return
		}

		data, err := json.Marshal(productos)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := m.redis.Set(bgCtx, m.listKey(version, categoriaID), data, m.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version after a catalog mutation.
func (m *MenuCache) Invalidate(ctx context.Context) {
	if m == nil {
		return
	}
	if err := m.redis.Incr(ctx, versionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump menu cache version", zap.Error(err))
	}
}

func (m *MenuCache) version(ctx context.Context) (int64, error) {
	version, err := m.redis.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		if err := m.redis.Set(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}

func (m *MenuCache) listKey(version int64, categoriaID uint) string {
	if categoriaID == 0 {
		return fmt.Sprintf("%s%d:all", listaCachePrefix, version)
	}
	return fmt.Sprintf("%s%d:cat:%d", listaCachePrefix, version, categoriaID)
}
