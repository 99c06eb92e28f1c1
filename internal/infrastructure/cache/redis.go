package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/events"
)

const scanBatch = 200

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.GetRedisAddr(), err)
	}
	return client, nil
}

// RedisStore keeps results in Redis so several API instances share one cache
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	clock   clock.Clock
	emitter events.Emitter
}

type redisEntry struct {
	Value   entities.Result `json:"value"`
	SavedAt time.Time       `json:"saved_at"`
}

// NewRedisStore creates a store writing keys under prefix
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration, em events.Emitter) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		clock:   clock.New(),
		emitter: em,
	}
}

func (rs *RedisStore) key(k string) string {
	return rs.prefix + k
}

// Set writes result with the store TTL
func (rs *RedisStore) Set(ctx context.Context, key string, result entities.Result) error {
	b, err := json.Marshal(redisEntry{Value: result, SavedAt: rs.clock.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := rs.client.Set(ctx, rs.key(key), b, rs.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	events.Emit(rs.emitter, entities.Event{Type: entities.EventCacheSave, Key: key})
	return nil
}

// Get reads the entry under key and applies the same age check as MemoryStore
func (rs *RedisStore) Get(ctx context.Context, key string) (entities.Result, bool, error) {
	b, err := rs.client.Get(ctx, rs.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		events.Emit(rs.emitter, entities.Event{Type: entities.EventCacheMiss, Key: key})
		return entities.Result{}, false, nil
	}
	if err != nil {
		return entities.Result{}, false, fmt.Errorf("redis get: %w", err)
	}

	var entry redisEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		// unreadable entries are dropped so the next request regenerates them
		_ = rs.client.Del(ctx, rs.key(key)).Err()
		events.Emit(rs.emitter, entities.Event{Type: entities.EventCacheMiss, Key: key})
		return entities.Result{}, false, nil
	}

	age := rs.clock.Since(entry.SavedAt)
	if age >= rs.ttl {
		if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
			return entities.Result{}, false, fmt.Errorf("redis del: %w", err)
		}
		events.Emit(rs.emitter, entities.Event{Type: entities.EventCacheExpire, Key: key, Age: age})
		return entities.Result{}, false, nil
	}

	events.Emit(rs.emitter, entities.Event{Type: entities.EventCacheHit, Key: key, Age: age})
	return entry.Value, true, nil
}

// Clear deletes every key under the store prefix
func (rs *RedisStore) Clear(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := rs.client.Scan(ctx, cursor, rs.prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := rs.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
