package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/outfit"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const DefaultCatalogTTL = 5 * time.Minute

type CatalogProvider interface {
	Catalog(ctx context.Context, ownerID uint) ([]outfit.Garment, error)
	Invalidate(ctx context.Context, ownerID uint)
}

// CatalogLoader reads the full clothing list of one owner.
type CatalogLoader func(ctx context.Context, ownerID uint) ([]outfit.Garment, error)

// CatalogCache keeps one immutable catalog snapshot per owner. Keys carry a
// per-owner generation, so a load racing with Invalidate can only ever fill
// a key nobody reads again.
type CatalogCache struct {
	cache       *cache.LoadableCache[[]outfit.Garment]
	generations sync.Map // uint -> *atomic.Uint64
	logger      zerolog.Logger
}

func NewCatalogCache(load CatalogLoader, ttl time.Duration, logger zerolog.Logger) (*CatalogCache, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 14, // snapshots are counted as cost 1
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	c := &CatalogCache{logger: logger.With().Str("component", "catalog_cache").Logger()}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	loadFunction := func(ctx context.Context, key any) ([]outfit.Garment, []store.Option, error) {
		k, ok := key.(string)
		if !ok {
			return nil, nil, fmt.Errorf("invalid key type provided to catalog cache: expected string, got %T", key)
		}
		ownerID, err := ownerFromKey(k)
		if err != nil {
			return nil, nil, err
		}
		c.logger.Debug().Uint("owner_id", ownerID).Msg("catalog cache miss")
		CatalogCacheLoads.Inc()
		garments, err := load(ctx, ownerID)
		return garments, []store.Option{store.WithExpiration(ttl), store.WithCost(1)}, err
	}
	c.cache = cache.NewLoadable[[]outfit.Garment](
		loadFunction,
		cache.New[[]outfit.Garment](ristrettoStore),
	)
	return c, nil
}

// NewDBCatalogCache loads snapshots with gorm.
func NewDBCatalogCache(db *gorm.DB, ttl time.Duration, logger zerolog.Logger) (*CatalogCache, error) {
	return NewCatalogCache(DBCatalogLoader(db), ttl, logger)
}

func DBCatalogLoader(db *gorm.DB) CatalogLoader {
	return func(ctx context.Context, ownerID uint) ([]outfit.Garment, error) {
		var clothes []models.Clothing
		if err := db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id asc").Find(&clothes).Error; err != nil {
			return nil, fmt.Errorf("load catalog of owner %d: %w", ownerID, err)
		}
		return models.Garments(clothes), nil
	}
}

func (c *CatalogCache) Catalog(ctx context.Context, ownerID uint) ([]outfit.Garment, error) {
	return c.cache.Get(ctx, c.key(ownerID))
}

func (c *CatalogCache) Invalidate(ctx context.Context, ownerID uint) {
	old := c.key(ownerID)
	c.generation(ownerID).Add(1)
	if err := c.cache.Delete(ctx, old); err != nil {
		c.logger.Debug().Err(err).Uint("owner_id", ownerID).Msg("delete stale catalog")
	}
}

func (c *CatalogCache) generation(ownerID uint) *atomic.Uint64 {
	gen, _ := c.generations.LoadOrStore(ownerID, new(atomic.Uint64))
	return gen.(*atomic.Uint64)
}

func (c *CatalogCache) key(ownerID uint) string {
	return fmt.Sprintf("catalog:%d:%d", ownerID, c.generation(ownerID).Load())
}

func ownerFromKey(key string) (uint, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed catalog key %q", key)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed catalog key %q: %w", key, err)
	}
	return uint(id), nil
}
