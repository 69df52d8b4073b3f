// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/api"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

type harness struct {
	t      *testing.T
	server *httptest.Server
}

func newHarness(t *testing.T, settings auth.Settings) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := mockdb.NewDefault()
	require.NoError(t, err)

	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	handlers := api.NewHandlers(api.MemoryStores(db), tokens, settings, logger)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(nil, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	server := httptest.NewServer(api.NewServer(t.Context(), cfg, logger, tokens, handlers).Handler())
	t.Cleanup(server.Close)

	return &harness{t: t, server: server}
}

func (h *harness) do(method, path, token string, body any) (int, envelope) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(h.t, err)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := h.server.Client().Do(request)
	require.NoError(h.t, err)
	defer response.Body.Close()

	var decoded envelope
	if response.StatusCode != http.StatusNoContent {
		require.NoError(h.t, json.NewDecoder(response.Body).Decode(&decoded))
	}
	return response.StatusCode, decoded
}

func (h *harness) login(email string) auth.LoginSession {
	h.t.Helper()

	status, body := h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(h.t, http.StatusOK, status, body.Error)

	var session auth.LoginSession
	require.NoError(h.t, json.Unmarshal(body.Data, &session))
	return session
}

/*
TestServer_Health verifies the infrastructure probes.
*/
func TestServer_Health(t *testing.T) {
	h := newHarness(t, auth.Settings{})

	status, _ := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ready","checks":[]}`, string(body.Data))
}

/*
TestServer_FeedScenario logs in, reads the first feed page, and likes a post.
*/
func TestServer_FeedScenario(t *testing.T) {
	h := newHarness(t, auth.Settings{})
	session := h.login("john@example.com")
	assert.Equal(t, "johndoe", session.User.Username)
	assert.NotEmpty(t, session.RefreshToken)

	status, body := h.do(http.MethodGet, "/api/v1/posts/feed?page=1&limit=2", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	var posts []struct {
		ID      string `json:"id"`
		IsLiked bool   `json:"isLiked"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.True(t, posts[1].IsLiked)
	assert.Equal(t, true, body.Meta["hasNextPage"])
	assert.Equal(t, "2", body.Meta["nextCursor"])

	status, body = h.do(http.MethodPost, "/api/v1/posts/1/like", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"likesCount":43`)
}

/*
TestServer_Errors verifies the error envelope for common failures.
*/
func TestServer_Errors(t *testing.T) {
	h := newHarness(t, auth.Settings{})
	john := h.login("john@example.com")
	sarah := h.login("sarah@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"bad password", http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "john@example.com", "password": "nope"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"anonymous create", http.MethodPost, "/api/v1/posts", "", map[string]string{"content": "hi"}, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"bogus token", http.MethodGet, "/api/v1/posts/feed", "bogus", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty post", http.MethodPost, "/api/v1/posts", john.AccessToken, map[string]string{"content": "  "}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"self follow", http.MethodPost, "/api/v1/follows/1/toggle", john.AccessToken, nil, http.StatusBadRequest, "SELF_FOLLOW"},
		{"missing post", http.MethodGet, "/api/v1/posts/404", "", nil, http.StatusNotFound, "NOT_FOUND"},
		{"not the author", http.MethodDelete, "/api/v1/posts/2", john.AccessToken, nil, http.StatusForbidden, "FORBIDDEN"},
		{"member reviews", http.MethodPost, "/api/v1/verification/review/2", sarah.AccessToken, map[string]bool{"approve": true}, http.StatusForbidden, "FORBIDDEN"},
		{"empty refresh", http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{}, http.StatusUnauthorized, "NO_REFRESH_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := h.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

/*
TestServer_Refresh verifies an expired access token can be renewed with the
refresh token.
*/
func TestServer_Refresh(t *testing.T) {
	h := newHarness(t, auth.Settings{AccessTokenTTL: time.Millisecond})
	session := h.login("sarah@example.com")

	time.Sleep(1100 * time.Millisecond)

	status, body := h.do(http.MethodGet, "/api/v1/auth/me", session.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)

	status, body = h.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": session.RefreshToken})
	require.Equal(t, http.StatusOK, status)

	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
}
