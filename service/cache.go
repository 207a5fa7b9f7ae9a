package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"dealdesk/repository"
)

func cacheKey(kind string, input any) (string, bool) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", false
	}
	return kind + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), true
}

// cached returns the stored result for (kind, input) or computes and stores it.
// Cache failures only cost a recomputation.
func cached[T any](
	ctx context.Context,
	cache repository.CacheRepository,
	ttl time.Duration,
	log zerolog.Logger,
	kind string,
	input any,
	compute func() T,
) T {
	if cache == nil {
		return compute()
	}

	key, ok := cacheKey(kind, input)
	if !ok {
		return compute()
	}

	if raw, hit := cache.Get(ctx, key); hit {
		var result T
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result
		}
		log.Warn().Str("key", key).Msg("discarding unreadable cache entry")
	}

	result := compute()
	if payload, err := json.Marshal(result); err == nil {
		if err := cache.Set(ctx, key, string(payload), ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache calculation")
		}
	}
	return result
}
