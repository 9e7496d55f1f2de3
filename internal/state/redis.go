package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/shopmate-fulfillment/server/internal/core/error"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

// RedisStore persists session contexts in a Redis hash, one field per context
// name. The whole hash carries a TTL so abandoned sessions fall out of Redis
// even without Tick reaching zero.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("contexts:%s", sessionID)
}

func (r *RedisStore) Set(ctx context.Context, sessionID, name string, params map[string]any, lifespan int) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}

	b, err := json.Marshal(Entry{Parameters: params, RemainingTurns: lifespan})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Str("context", name).Msg("failed to marshal context entry")
		return fmt.Errorf("marshal context entry: %w", err)
	}

	key := r.sessionKey(sessionID)
	if err := r.rdb.HSet(ctx, key, name, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write context to redis")
		return errx.WrapRedis(err)
	}
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire on context key")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on context key")
		}
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID, name string) (map[string]any, error) {
	key := r.sessionKey(sessionID)

	raw, err := r.rdb.HGet(ctx, key, name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrContextNotFound
		}
		logx.Error().Err(err).Str("key", key).Str("context", name).Msg("failed to read context from redis")
		return nil, errx.WrapRedis(err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logx.Error().Err(err).Str("key", key).Str("context", name).Msg("failed to unmarshal context entry")
		return nil, fmt.Errorf("unmarshal context entry: %w", err)
	}
	if entry.RemainingTurns <= 0 {
		return nil, ErrContextNotFound
	}
	return entry.Parameters, nil
}

// Tick decrements the lifespan of every context in the session and evicts the
// ones that reach zero. One in-flight turn per session is assumed, so the
// read-modify-write does not need to be atomic.
func (r *RedisStore) Tick(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)

	rows, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load contexts for tick")
		return errx.WrapRedis(err)
	}

	for name, raw := range rows {
		var entry Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			logx.Warn().Err(err).Str("key", key).Str("context", name).Msg("dropping undecodable context entry")
			if err := r.rdb.HDel(ctx, key, name).Err(); err != nil {
				return errx.WrapRedis(err)
			}
			continue
		}

		entry.RemainingTurns--
		if entry.RemainingTurns <= 0 {
			if err := r.rdb.HDel(ctx, key, name).Err(); err != nil {
				return errx.WrapRedis(err)
			}
			continue
		}

		b, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal context entry: %w", err)
		}
		if err := r.rdb.HSet(ctx, key, name, b).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session contexts from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
