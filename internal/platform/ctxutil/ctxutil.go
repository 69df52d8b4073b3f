// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context]: the
// correlation id, the request-scoped logger, and the verified token claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

// key is unexported so no other package can read or overwrite these values.
type key int

const (
	requestIDKey key = iota
	loggerKey
	claimsKey
)

// # Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the X-Request-ID of the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the request logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims returns the verified access token claims, or nil for anonymous
// requests.
func Claims(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(claimsKey).(*sec.AuthClaims)
	return claims
}

// ViewerID is the caller's account id, or "" when anonymous. Read paths use
// it for viewer-relative fields such as isLiked and isFollowing.
func ViewerID(ctx context.Context) string {
	if claims := Claims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
