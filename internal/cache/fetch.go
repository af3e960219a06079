package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hansardlab/gavel/internal/logger"
	"github.com/hansardlab/gavel/internal/metrics"
)

// Client is the consumer interface for the response cache.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetch loads a value through the response cache. A nil client, a miss, a
// cache failure, or an undecodable entry all fall through to load; cache
// failures never fail the request, they just cost the round trip.
func Fetch[T any](ctx context.Context, c Client, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	raw, err := c.Get(ctx, key)
	if err == nil {
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			metrics.CacheHit()
			return v, nil
		}
	} else if !errors.Is(err, ErrMiss) {
		logger.FromContext(ctx).Debug("cache read failed",
			zap.String("key", key), zap.Error(err))
	}
	metrics.CacheMiss()

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if raw, jerr := json.Marshal(v); jerr == nil {
		if serr := c.Set(ctx, key, raw, ttl); serr != nil {
			logger.FromContext(ctx).Debug("cache write failed",
				zap.String("key", key), zap.Error(serr))
		}
	}
	return v, nil
}
