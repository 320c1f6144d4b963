// Package cache is a small Redis-backed memo for read-heavy lookups
// (client directory, service catalog). Entries live until their TTL or an
// explicit invalidation after a mutation; there is no local sweep.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss возвращается, когда ключа нет в кеше или он протух
var ErrMiss = errors.New("cache: miss")

// Cache обертка над Redis с JSON-сериализацией значений
type Cache struct {
	rdb    *redis.Client
	prefix string
}

// New создает кеш. Все ключи получают префикс prefix + ":".
func New(rdb *redis.Client, prefix string) *Cache {
	return &Cache{rdb: rdb, prefix: prefix}
}

// Get читает значение по ключу в dest. Возвращает ErrMiss, если ключа нет.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache: decode %q: %w", key, err)
	}
	return nil
}

// Set записывает значение с TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}
	return nil
}

// Delete удаляет конкретные ключи (инвалидация после мутации)
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache: delete: %w", err)
	}
	return nil
}

// Clear удаляет все ключи сервиса (используется при logout)
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache: clear: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: clear scan: %w", err)
	}
	return nil
}

func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}
