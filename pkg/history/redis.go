package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis key layout: one JSON value per entry plus a list holding the order
// of entry IDs, newest first. LTRIM on the index keeps the cap.
const (
	redisIndexKey   = "stackcanvas:history:index"
	redisEntryKey   = "stackcanvas:history:entry:"
	redisEntryBatch = 50 // MGET chunk size for List
)

// RedisStore keeps history in Redis, shared across server instances.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds Redis connection settings for the history store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Append stores the entry and pushes its ID onto the index, trimming the
// index and deleting evicted entries beyond MaxEntries.
func (s *RedisStore) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisEntryKey+e.ID, data, 0)
	pipe.LPush(ctx, redisIndexKey, e.ID)
	evicted := pipe.LRange(ctx, redisIndexKey, MaxEntries, -1)
	pipe.LTrim(ctx, redisIndexKey, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	for _, id := range evicted.Val() {
		_ = s.client.Del(ctx, redisEntryKey+id).Err()
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (Entry, error) {
	data, err := s.client.Get(ctx, redisEntryKey+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", id, err)
	}
	return e, nil
}

// List returns up to limit entries, newest first.
func (s *RedisStore) List(ctx context.Context, limit int) ([]Entry, error) {
	limit = normalizeLimit(limit)

	ids, err := s.client.LRange(ctx, redisIndexKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Entry{}, nil
	}

	out := make([]Entry, 0, len(ids))
	for start := 0; start < len(ids); start += redisEntryBatch {
		end := min(start+redisEntryBatch, len(ids))
		keys := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, redisEntryKey+id)
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			str, ok := v.(string)
			if !ok {
				continue // entry evicted between LRANGE and MGET
			}
			var e Entry
			if err := json.Unmarshal([]byte(str), &e); err != nil {
				continue
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes an entry and its index reference.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, redisIndexKey, 0, id)
	pipe.Del(ctx, redisEntryKey+id)
	_, err := pipe.Exec(ctx)
	return err
}

// Clear removes all entries and the index.
func (s *RedisStore) Clear(ctx context.Context) error {
	ids, err := s.client.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, redisEntryKey+id)
	}
	pipe.Del(ctx, redisIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
