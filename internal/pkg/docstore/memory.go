package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// MemoryStore 进程内文档存储，本地开发和测试使用
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(ctx context.Context, path string, dest interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	x, found := s.cache.Get(path)
	if !found {
		return ErrNotFound
	}

	// 存储序列化后的字节，调用方拿到的是独立副本
	if err := json.Unmarshal(x.([]byte), dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	s.cache.Set(path, data, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	x, found := s.cache.Get(path)
	if !found {
		return ErrNotFound
	}

	merged, err := mergeFields(x.([]byte), fields)
	if err != nil {
		return err
	}

	s.cache.Set(path, merged, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	s.cache.Delete(path)
	return nil
}

// Len 当前文档数量
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
