// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persist stores the client state that survives a restart.

The state is a flat string key/value map. [Memory] serves tests, [File] is
the command-line default and [Redis] shares one session between machines.
*/
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
)

// # Keys

const (
	KeyAccessToken  = constants.StateKeyAccessToken
	KeyRefreshToken = constants.StateKeyRefreshToken
	KeyUser         = constants.StateKeyUser
	KeyTheme        = constants.StateKeyTheme
)

// SessionKeys are cleared together on logout.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// # Interface

// Store is a string key/value store for persisted client state.
type Store interface {
	// Get returns the value under key and whether it was present.
	Get(context context.Context, key string) (string, bool, error)

	Set(context context.Context, key, value string) error

	// Delete removes every key. Missing keys are not an error.
	Delete(context context.Context, keys ...string) error
}

// # JSON Helpers

// GetJSON decodes the value under key into target.
//
// It reports false when the key is absent. A value that does not decode is
// returned as an error so callers can treat it as corrupt state.
func GetJSON(context context.Context, store Store, key string, target any) (bool, error) {
	raw, ok, err := store.Get(context, key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("persist_decode_failed: %s: %w", key, err)
	}

	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(context context.Context, store Store, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("persist_encode_failed: %s: %w", key, err)
	}
	return store.Set(context, key, string(payload))
}
