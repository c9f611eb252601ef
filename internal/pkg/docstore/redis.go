package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore 每个文档存为一个 string key
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisStore) key(path string) string {
	return s.keyPrefix + path
}

func (s *RedisStore) Get(ctx context.Context, path string, dest interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	data, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (s *RedisStore) Set(ctx context.Context, path string, value interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return s.client.Set(ctx, s.key(path), data, 0).Err()
}

// Update 读取-合并-写回，并发写入以最后一次为准
func (s *RedisStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	existing, err := s.client.Get(ctx, s.key(path)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", path, err)
	}

	merged, err := mergeFields(existing, fields)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(path), merged, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return s.client.Del(ctx, s.key(path)).Err()
}
