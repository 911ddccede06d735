package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "doze"

// Store keeps each collection as a plain string value under a prefixed key.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (store *Store) Key(parts ...string) string {
	var builder strings.Builder
	builder.WriteString(store.prefix)
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteString(":")
		builder.WriteString(part)
	}
	return builder.String()
}

func (store *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, store.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (store *Store) Set(ctx context.Context, key string, value string) error {
	return store.client.Set(ctx, store.Key(key), value, 0).Err()
}

func (store *Store) RemoveMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, store.Key(key))
	}
	return store.client.Del(ctx, prefixed...).Err()
}

func (store *Store) Close() error {
	return store.client.Close()
}
