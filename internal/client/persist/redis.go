// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
)

// Redis is a [Store] that keeps each key under a namespaced Redis string.
//
// Values never expire; the server bounds token lifetimes on its own.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a [Redis] store. namespace separates several clients
// sharing one Redis database.
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, prefix: constants.RedisPrefixClientState + namespace + ":"}
}

func (store *Redis) Get(context context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(context, store.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("persist_redis_get_failed: %w", err)
	}
	return value, true, nil
}

func (store *Redis) Set(context context.Context, key, value string) error {
	if err := store.client.Set(context, store.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("persist_redis_set_failed: %w", err)
	}
	return nil
}

func (store *Redis) Delete(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	namespaced := make([]string, len(keys))
	for index, key := range keys {
		namespaced[index] = store.prefix + key
	}

	if err := store.client.Del(context, namespaced...).Err(); err != nil {
		return fmt.Errorf("persist_redis_delete_failed: %w", err)
	}
	return nil
}
