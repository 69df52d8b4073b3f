// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a [Store] backed by a single JSON object on disk.
//
// Every write rewrites the whole file through a temporary file and a rename,
// so a crash never leaves a half-written state file behind.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a [File] store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (store *File) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

func (store *File) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return err
	}

	values[key] = value
	return store.save(values)
}

func (store *File) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return err
	}

	for _, key := range keys {
		delete(values, key)
	}
	return store.save(values)
}

func (store *File) load() (map[string]string, error) {
	payload, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist_file_read_failed: %w", err)
	}

	values := make(map[string]string)
	if len(payload) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("persist_file_decode_failed: %w", err)
	}

	return values, nil
}

func (store *File) save(values map[string]string) error {
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("persist_file_encode_failed: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(store.path), ".state-*")
	if err != nil {
		return fmt.Errorf("persist_file_write_failed: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(payload); err != nil {
		temp.Close()
		return fmt.Errorf("persist_file_write_failed: %w", err)
	}
	if err := temp.Chmod(0o600); err != nil {
		temp.Close()
		return fmt.Errorf("persist_file_write_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("persist_file_write_failed: %w", err)
	}

	if err := os.Rename(temp.Name(), store.path); err != nil {
		return fmt.Errorf("persist_file_rename_failed: %w", err)
	}

	return nil
}
