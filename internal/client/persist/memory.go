// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-process [Store].
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty [Memory] store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (store *Memory) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.values[key]
	return value, ok, nil
}

func (store *Memory) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return nil
}

func (store *Memory) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, key := range keys {
		delete(store.values, key)
	}
	return nil
}

// Snapshot returns a copy of every stored value.
func (store *Memory) Snapshot() map[string]string {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return maps.Clone(store.values)
}
