// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/makaohomes/makao-backend/internal/config"
)

// Cache is a thin redis response cache for the hot public listing
// queries. Keys embed a namespace version; any listing mutation bumps
// the version, which invalidates every cached listing at once without
// scanning keys.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg config.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.ListTTL) * time.Second,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// ListingKey builds a deterministic key from the filter set, scoped to
// the current listings namespace version.
func (c *Cache) ListingKey(ctx context.Context, params map[string]string) string {
	version, err := c.client.Get(ctx, "listings:version").Result()
	if err != nil {
		version = "0"
	}
	return QueryKey("listings:v"+version, params)
}

// InvalidateListings drops every cached listing response by bumping the
// namespace version. Stale keys expire on their own TTL.
func (c *Cache) InvalidateListings(ctx context.Context) error {
	return c.client.Incr(ctx, "listings:version").Err()
}

// QueryKey hashes a sorted parameter set into a stable cache key.
func QueryKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}
