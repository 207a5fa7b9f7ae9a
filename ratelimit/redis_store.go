package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisPrefix = "ratelimit:"
	scanBatch          = 200
)

// RedisStore keeps one sorted set per key, scored by unix milliseconds.
// Keys expire one window after their last append.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, window time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    window,
	}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Timestamps(ctx context.Context, key string) ([]time.Time, error) {
	members, err := r.client.ZRangeWithScores(ctx, r.key(key), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, len(members))
	for _, z := range members {
		out = append(out, time.UnixMilli(int64(z.Score)))
	}
	return out, nil
}

func (r *RedisStore) Append(ctx context.Context, key string, at time.Time) error {
	ms := at.UnixMilli()
	k := r.key(key)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, k, redis.Z{
			Score:  float64(ms),
			Member: strconv.FormatInt(ms, 10) + "-" + uuid.NewString(),
		})
		pipe.PExpire(ctx, k, r.ttl)
		return nil
	})
	return err
}

func (r *RedisStore) Purge(ctx context.Context, key string, cutoff time.Time) error {
	return r.client.ZRemRangeByScore(ctx, r.key(key), "-inf", strconv.FormatInt(cutoff.UnixMilli(), 10)).Err()
}

func (r *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		out    []string
	)
	// SCAN may return a key more than once
	seen := make(map[string]struct{})
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k[len(r.prefix):])
		}
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}

func (r *RedisStore) Reset(ctx context.Context) error {
	keys, err := r.Keys(ctx)
	if err != nil {
		return err
	}
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		full := make([]string, 0, end-start)
		for _, k := range keys[start:end] {
			full = append(full, r.key(k))
		}
		if err := r.client.Del(ctx, full...).Err(); err != nil {
			return err
		}
	}
	return nil
}
