// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

type verifierFunc func(token string) (*sec.AuthClaims, error)

func (fn verifierFunc) VerifyToken(token string) (*sec.AuthClaims, error) { return fn(token) }

var verifier = verifierFunc(func(token string) (*sec.AuthClaims, error) {
	switch token {
	case "member":
		return &sec.AuthClaims{UserID: "2", Role: string(sec.RoleMember)}, nil
	case "moderator":
		return &sec.AuthClaims{UserID: "3", Role: string(sec.RoleModerator)}, nil
	}
	return nil, errors.New("bad token")
})

func echoViewer(writer http.ResponseWriter, request *http.Request) {
	_, _ = io.WriteString(writer, ctxutil.ViewerID(request.Context()))
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthorization covers anonymous, member and moderator callers against each
guard.
*/
func TestAuthorization(t *testing.T) {
	authenticate := middleware.Authenticate(verifier)

	tests := []struct {
		name   string
		guard  func(http.Handler) http.Handler
		header string
		status int
		body   string
	}{
		{"anonymous passes", func(next http.Handler) http.Handler { return next }, "", http.StatusOK, ""},
		{"member identified", func(next http.Handler) http.Handler { return next }, "Bearer member", http.StatusOK, "2"},
		{"bad scheme", func(next http.Handler) http.Handler { return next }, "Basic member", http.StatusUnauthorized, `"UNAUTHORIZED"`},
		{"expired token", func(next http.Handler) http.Handler { return next }, "Bearer stale", http.StatusUnauthorized, `"UNAUTHORIZED"`},
		{"auth required", middleware.RequireAuth, "", http.StatusUnauthorized, `"NOT_AUTHENTICATED"`},
		{"auth satisfied", middleware.RequireAuth, "bearer member", http.StatusOK, "2"},
		{"role too low", middleware.RequireRole(sec.RoleModerator), "Bearer member", http.StatusForbidden, `"FORBIDDEN"`},
		{"role satisfied", middleware.RequireRole(sec.RoleModerator), "Bearer moderator", http.StatusOK, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}

			recorder := serve(authenticate(tt.guard(http.HandlerFunc(echoViewer))), request)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.body)
		})
	}
}

/*
TestRequestID verifies incoming ids are kept and missing ones are minted.
*/
func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, ctxutil.RequestID(request.Context()))
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	recorder := serve(handler, request)
	assert.Equal(t, "req-42", recorder.Body.String())
	assert.Equal(t, "req-42", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Body.String())
	assert.Equal(t, recorder.Body.String(), recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRateLimit verifies the burst is enforced per client IP.
*/
func TestRateLimit(t *testing.T) {
	handler := middleware.RateLimit(t.Context(), 0.001, 2)(http.HandlerFunc(echoViewer))

	from := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		return serve(handler, request).Code
	}

	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))
}

/*
TestPanicRecovery verifies a panic becomes a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"INTERNAL_ERROR"`)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

type policy struct{ allowed string }

func (policy) IsDevelopment() bool { return false }
func (policy policy) AllowsOrigin(origin string) bool { return origin == policy.allowed }

/*
TestCORS verifies allowed origins are echoed and preflights short-circuit.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(policy{allowed: "https://app.example.com"})(http.HandlerFunc(echoViewer))

	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://app.example.com")
	recorder := serve(handler, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example.com")
	recorder = serve(handler, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
