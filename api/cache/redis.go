package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Yatube/api/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// IndexPagePrefix namespaces the cached index page bodies.
const IndexPagePrefix = "index_page:"

var (
	indexHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_index_cache_hits_total",
		Help: "Index page responses served from the cache.",
	})
	indexMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_index_cache_misses_total",
		Help: "Index page responses rendered because the cache had no entry.",
	})
)

// Cache is a thin wrapper around a redis client. A nil *Cache, or one
// without a client, behaves as an always-empty cache.
type Cache struct {
	Client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{Client: client}
}

// FromConfig connects using either:
// - REDIS_URL (hosted redis, rediss:// for TLS)
// - or REDIS_ADDR with optional credentials
func FromConfig(cfg config.Config) (*Cache, error) {
	var client *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(client), nil
}

func (c *Cache) enabled() bool {
	return c != nil && c.Client != nil
}

// Get returns the cached value and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.enabled() {
		return nil
	}
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.enabled() {
		return nil
	}
	return c.Client.Del(ctx, key).Err()
}

// DeleteByPrefix removes every key starting with prefix and reports how
// many were deleted.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if !c.enabled() {
		return 0, nil
	}

	deleted := 0
	var cursor uint64
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.Client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// IndexPageKey builds the key for one rendered index page. Anonymous
// viewers share viewer id 0.
func IndexPageKey(viewerID uint, page int) string {
	return fmt.Sprintf("%s%d:%d", IndexPagePrefix, viewerID, page)
}

// GetIndexPage is Get plus hit/miss accounting.
func (c *Cache) GetIndexPage(ctx context.Context, viewerID uint, page int) ([]byte, bool) {
	body, ok, err := c.Get(ctx, IndexPageKey(viewerID, page))
	if err != nil || !ok {
		indexMisses.Inc()
		return nil, false
	}
	indexHits.Inc()
	return body, true
}

func (c *Cache) SetIndexPage(ctx context.Context, viewerID uint, page int, body []byte, ttl time.Duration) error {
	return c.Set(ctx, IndexPageKey(viewerID, page), body, ttl)
}

// ClearIndex drops every cached index page.
func (c *Cache) ClearIndex(ctx context.Context) (int, error) {
	return c.DeleteByPrefix(ctx, IndexPagePrefix)
}
