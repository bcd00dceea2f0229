package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the cross-process result cache tier, for deployments running
// multiple engine instances against shared documents (adapted from the
// teacher's storage.Redis).
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to a Redis instance for use as a cache tier. ttl of
// zero means entries never expire.
func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Get implements Store.
func (r *Redis) Get(key Key) (Entry, bool, error) {
	var entry Entry

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raw, err := r.client.Get(ctx, string(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entry, false, nil
		}
		return entry, false, fmt.Errorf("cache: failed to get entry: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return entry, false, fmt.Errorf("cache: failed to unmarshal entry: %w", err)
	}
	return entry, true, nil
}

// Set implements Store.
func (r *Redis) Set(key Key, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.client.Set(ctx, string(key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to set entry: %w", err)
	}
	return nil
}

// Clear implements Store. It flushes only the currently selected Redis
// logical database, matching the scope NewRedis connected to.
func (r *Redis) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.FlushDB(ctx).Err()
}
