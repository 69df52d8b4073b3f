// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds values shared by the API server and the client:
// timeouts, limits, header names and storage keys.
package constants

import "time"

const (
	AppName    = "yomira-social"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second

	// DefaultWriteTimeout is the slack added on top of GlobalRequestTimeout
	// for writing the response.
	DefaultWriteTimeout = 10 * time.Second
	DefaultIdleTimeout  = 2 * time.Minute

	// GlobalRequestTimeout bounds one request, including mock latency and
	// the statement_timeout of every Postgres connection.
	GlobalRequestTimeout = 30 * time.Second
	ShutdownTimeout      = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	AuthIssuer = "social.yomira.app"

	// RefreshTokenLength is in random bytes, before base64url encoding.
	RefreshTokenLength = 32
)

// # HTTP

const (
	HeaderAuthorization = "Authorization"
	BearerScheme        = "Bearer"

	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json; charset=utf-8"
)

// # Key Namespaces

const (
	RedisPrefixSession     = "auth:session:"
	RedisPrefixClientState = "socialctl:state:"
)

// Keys of the persisted client state. Values are JSON.
const (
	StateKeyAccessToken  = "accessToken"
	StateKeyRefreshToken = "refreshToken"
	StateKeyUser         = "user"
	StateKeyTheme        = "theme"
)

// # Content Limits

const (
	// MaxPostLength counts Unicode code points and also bounds comments.
	MaxPostLength = 280
	MaxBioLength  = 160
)
