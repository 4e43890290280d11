// Package cache keeps serialized offer lists in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/six-cities/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "sixcities:offers:"

// Redis is the subset of *redis.Client used by the cache.
type Redis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisClient connects to addr and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Offers caches offer lists under a per-city key.
// Cache errors are logged and treated as misses.
type Offers struct {
	rdb Redis
	ttl time.Duration
	log *zap.Logger
}

// NewOffers builds an offers cache with the given TTL.
func NewOffers(rdb Redis, ttl time.Duration, log *zap.Logger) *Offers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Offers{rdb: rdb, ttl: ttl, log: log}
}

// Key returns the cache key for a city title; "" stands for all cities.
func Key(city string) string {
	if city == "" {
		return keyPrefix + "all"
	}
	return keyPrefix + city
}

// Get returns the cached list for city.
func (c *Offers) Get(ctx context.Context, city string) (model.Offers, bool) {
	raw, err := c.rdb.Get(ctx, Key(city)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("offers cache get", zap.String("city", city), zap.Error(err))
		}
		return nil, false
	}
	var out model.Offers
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("offers cache decode", zap.String("city", city), zap.Error(err))
		return nil, false
	}
	return out, true
}

// Put stores the list for city.
func (c *Offers) Put(ctx context.Context, city string, offers model.Offers) {
	raw, err := json.Marshal(offers)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, Key(city), raw, c.ttl).Err(); err != nil {
		c.log.Warn("offers cache set", zap.String("city", city), zap.Error(err))
	}
}

// Invalidate drops the entries for cities and for the full list.
func (c *Offers) Invalidate(ctx context.Context, cities ...string) {
	keys := []string{Key("")}
	for _, city := range cities {
		if city != "" {
			keys = append(keys, Key(city))
		}
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("offers cache del", zap.Strings("cities", cities), zap.Error(err))
	}
}
