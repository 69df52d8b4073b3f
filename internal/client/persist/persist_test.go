// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/client/persist"
)

/*
TestStores verifies Get/Set/Delete semantics on every local backend.
*/
func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) persist.Store{
		"memory": func(*testing.T) persist.Store { return persist.NewMemory() },
		"file": func(t *testing.T) persist.Store {
			return persist.NewFile(filepath.Join(t.TempDir(), "state.json"))
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()

			_, ok, err := store.Get(ctx, persist.KeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, persist.KeyAccessToken, "a"))
			require.NoError(t, store.Set(ctx, persist.KeyRefreshToken, "r"))
			require.NoError(t, store.Set(ctx, persist.KeyTheme, "dark"))

			value, ok, err := store.Get(ctx, persist.KeyAccessToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "a", value)

			require.NoError(t, store.Delete(ctx, persist.SessionKeys...))

			_, ok, err = store.Get(ctx, persist.KeyRefreshToken)
			require.NoError(t, err)
			assert.False(t, ok)

			theme, ok, err := store.Get(ctx, persist.KeyTheme)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", theme)
		})
	}
}

/*
TestFile_SurvivesReopen verifies state is read back by a fresh instance.
*/
func TestFile_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	require.NoError(t, persist.SetJSON(ctx, persist.NewFile(path), persist.KeyUser, map[string]string{"id": "1"}))

	var user map[string]string
	ok, err := persist.GetJSON(ctx, persist.NewFile(path), persist.KeyUser, &user)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", user["id"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

/*
TestGetJSON_Corrupt reports undecodable values as errors.
*/
func TestGetJSON_Corrupt(t *testing.T) {
	store := persist.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, persist.KeyUser, "{not json"))

	var user map[string]any
	ok, err := persist.GetJSON(ctx, store, persist.KeyUser, &user)
	assert.Error(t, err)
	assert.False(t, ok)
}
