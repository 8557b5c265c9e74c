package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrCompute reads a JSON-serialized value from the cache, or computes and
// stores it on a miss. The second return value reports whether the value came
// from the cache. Cache failures are swallowed: a broken cache degrades to
// computing every time, never to a failed query.
func GetOrCompute[T any](ctx context.Context, c QueryCache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	if c != nil {
		if raw, ok, err := c.Get(ctx, key); err == nil && ok {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, true, nil
			}
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if c != nil {
		if raw, err := json.Marshal(value); err == nil {
			_ = c.Set(ctx, key, raw, ttl)
		}
	}
	return value, false, nil
}
