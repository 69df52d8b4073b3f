// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// DefaultAccessTokenTTL is the duration a JWT access token remains valid.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the duration a session/refresh token remains valid.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour

	// MinPasswordLength applies to registration and password change.
	MinPasswordLength = 8
)

// Settings tunes token lifetimes. Zero values fall back to the defaults above.
type Settings struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func (settings Settings) withDefaults() Settings {
	if settings.AccessTokenTTL <= 0 {
		settings.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if settings.RefreshTokenTTL <= 0 {
		settings.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	return settings
}
