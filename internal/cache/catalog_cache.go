package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"storefront-service/internal/metrics"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

const (
	categoriesKey     = "categories:all"
	productListPrefix = "products:list:"
	productPrefix     = "product:"

	notFoundSentinel = "notfound"
	notFoundTTL      = 1 * time.Minute
)

// CachedCatalogRepository is a read-through cache in front of a
// CatalogRepository. Redis trouble never fails a read; it only sends the read
// to the database.
type CachedCatalogRepository struct {
	realRepo repository.CatalogRepository
	redis    *redis.Client
	breaker  *gobreaker.CircuitBreaker
	ttl      time.Duration
	log      zerolog.Logger
}

func NewCachedCatalogRepository(realRepo repository.CatalogRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedCatalogRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedCatalogRepository{
		realRepo: realRepo,
		redis:    rdb,
		breaker:  NewBreaker("redis", log),
		ttl:      ttl,
		log:      log,
	}
}

func (c *CachedCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return readThrough(ctx, c, "categories", categoriesKey, c.ttl, c.realRepo.ListCategories)
}

func (c *CachedCatalogRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return readThrough(ctx, c, "products", productListPrefix+filter.CacheKey(), c.ttl,
		func(ctx context.Context) ([]models.Product, error) {
			return c.realRepo.ListProducts(ctx, filter)
		})
}

func (c *CachedCatalogRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return readThrough(ctx, c, "product", productPrefix+id, c.ttl,
		func(ctx context.Context) (*models.Product, error) {
			return c.realRepo.GetProduct(ctx, id)
		})
}

func readThrough[T any](ctx context.Context, c *CachedCatalogRepository, name, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, ok := c.get(ctx, name, key); ok {
		if string(data) == notFoundSentinel {
			metrics.CacheRequests.WithLabelValues(name, metrics.CacheNotFound).Inc()
			return zero, repository.ErrNotFound
		}

		var v T
		err := json.Unmarshal(data, &v)
		if err == nil {
			metrics.CacheRequests.WithLabelValues(name, metrics.CacheHit).Inc()
			return v, nil
		}
		c.log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached value (continuing with DB)")
	}

	v, err := load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.set(ctx, key, notFoundSentinel, notFoundTTL)
		}
		return zero, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache")
		return v, nil
	}
	c.set(ctx, key, data, ttl)

	return v, nil
}

// get reports ok=false on a miss, a Redis error or an open breaker.
func (c *CachedCatalogRepository) get(ctx context.Context, name, key string) ([]byte, bool) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		data, err := c.redis.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		metrics.CacheRequests.WithLabelValues(name, metrics.CacheError).Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("redis read failed (continuing with DB)")
		return nil, false
	}

	data, _ := res.([]byte)
	if data == nil {
		metrics.CacheRequests.WithLabelValues(name, metrics.CacheMiss).Inc()
		return nil, false
	}
	return data, true
}

func (c *CachedCatalogRepository) set(ctx context.Context, key string, value any, ttl time.Duration) {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.redis.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}
