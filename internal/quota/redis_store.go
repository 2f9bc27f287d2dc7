package quota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/imagica/server/internal/logger"
)

const keyGenerations = "quota:generations:%s"

// implements Store using Redis with a retention TTL on each record set
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// creates a Redis-backed record store
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &RedisStore{client: client, retention: retention}
}

// creates a Redis-backed record store from a URL
func NewRedisStoreFromURL(redisURL string, retention time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStore(client, retention), nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) ([]Record, error) {
	key := fmt.Sprintf(keyGenerations, userID)

	raw, err := s.client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get generation records from redis: %w", err)
	}

	var records []Record

	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// fail open: corrupt stored state must never lock a user out
		logger.Warn("corrupt generation records in redis, treating as empty",
			"user_id", userID,
			"error", err,
		)

		return nil, nil
	}

	return records, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, records []Record) error {
	key := fmt.Sprintf(keyGenerations, userID)

	if len(records) == 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete generation records from redis: %w", err)
		}

		return nil
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal generation records: %w", err)
	}

	if err := s.client.Set(ctx, key, raw, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to set generation records in redis: %w", err)
	}

	return nil
}

// the redis store is shared across requests
func (s *RedisStore) ForRequest(_ http.ResponseWriter, _ *http.Request) Store {
	return s
}

// closes the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
