package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"board/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// errStaleFill aborts a fill whose generation moved while it was fetching.
var errStaleFill = errors.New("cache fill raced a write")

// Aside tries Redis first, on miss it calls fetch (which should populate dest)
// and stores the result with ttl. The result is stored only if genKey is
// unchanged since before fetch ran, so a fill that raced a Bump never caches
// the value read before the write. A failing cache read falls back to fetch;
// the store stays the source of truth.
func Aside(ctx context.Context, key, genKey string, dest any, ttl time.Duration, fetch func() error) error {
	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "aside")
	defer span.End()

	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
	}
	if found {
		return nil
	}
	if client == nil {
		return fetch()
	}

	gen, err := client.Get(ctx, genKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RecordErrorInContext(ctx, err)
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	b, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	err = client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, genKey)
	if err != nil && !errors.Is(err, errStaleFill) && !errors.Is(err, redis.TxFailedErr) {
		observability.RecordErrorInContext(ctx, err)
	}
	return nil
}

// Bump deletes key and advances genKey in one transaction, invalidating
// both the cached value and any fill still in flight.
func Bump(ctx context.Context, key, genKey string) {
	if client == nil {
		return
	}
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
	}
}
