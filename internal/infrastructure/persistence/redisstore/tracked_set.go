package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
)

// TrackedSetStore keeps the set of already-tracked order ids in Redis
// as a JSON-encoded string array under a single key, mirroring the
// storage format the confirmation page has always used. The value is
// appended to and never expires.
type TrackedSetStore struct {
	rdb *redis.Client
}

func New(cfg config.RedisConfig) (*TrackedSetStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping with retry so a redis that is still coming up does not kill
	// the service at boot.
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			return &TrackedSetStore{rdb: rdb}, nil
		}
		if i == maxRetries-1 {
			return nil, fmt.Errorf("connect to redis after %d retries: %w", maxRetries, err)
		}
		time.Sleep(time.Duration(1<<i) * time.Second)
	}
	return &TrackedSetStore{rdb: rdb}, nil
}

func (s *TrackedSetStore) Get(ctx context.Context, key string) ([]string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		// A corrupted value behaves like an empty set; the next Set
		// overwrites it with a well-formed array.
		return nil, nil
	}
	return ids, nil
}

func (s *TrackedSetStore) Set(ctx context.Context, key string, value []string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode tracked set: %w", err)
	}
	return s.rdb.Set(ctx, key, data, 0).Err()
}

func (s *TrackedSetStore) Close() error {
	return s.rdb.Close()
}
