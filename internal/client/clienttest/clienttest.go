// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package clienttest runs the mock API in-process for client package tests.
*/
package clienttest

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/api"
	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/remote"
	sessionslice "github.com/taibuivan/yomira-social/internal/client/slices/auth"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

// Backend is a running mock API over the default seed.
type Backend struct {
	DB      *mockdb.DB
	URL     string
	Gateway *gateway.Gateway
	Remote  *remote.Client
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewBackend starts the API on an ephemeral port and returns an unbound
// gateway pointed at it. Everything is torn down with the test.
func NewBackend(t testing.TB, settings auth.Settings) *Backend {
	t.Helper()

	db, err := mockdb.NewDefault()
	require.NoError(t, err)

	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	logger := Discard()
	handlers := api.NewHandlers(api.MemoryStores(db), tokens, settings, logger)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(nil, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	server := httptest.NewServer(api.NewServer(t.Context(), cfg, logger, tokens, handlers).Handler())

	gw := gateway.New(server.URL+"/api/v1", 5*time.Second, logger)
	t.Cleanup(func() {
		gw.Close()
		server.Close()
	})

	return &Backend{DB: db, URL: server.URL, Gateway: gw, Remote: remote.New(gw)}
}

// LogIn signs email in with the seed password and binds the session to the
// backend's gateway.
func (backend *Backend) LogIn(t testing.TB, email string) *sessionslice.Slice {
	t.Helper()

	session := sessionslice.New(backend.Remote, persist.NewMemory(), Discard())
	backend.Gateway.Bind(session, nil)

	_, err := session.Login(context.Background(), email, SeedPassword)
	require.NoError(t, err)
	return session
}
