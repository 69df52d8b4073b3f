// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # Repositories

/*
UserRepository reads and writes account credentials.

Lookups return apperr.NotFound for unknown keys. Email and username matching
is case-insensitive in every implementation.
*/
type UserRepository interface {
	FindByID(context context.Context, id string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	FindByUsername(context context.Context, username string) (*User, error)

	// Create fails with apperr.DuplicateAccount when the email or username
	// is taken.
	Create(context context.Context, user *User) error

	UpdatePassword(context context.Context, userID, newHash string) error
}

/*
SessionRepository tracks issued refresh tokens by their SHA-256 digest.

The raw token never reaches storage. Memory, Postgres and Redis
implementations exist; the Redis one expires rows on their own TTL.
*/
type SessionRepository interface {
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns apperr.NotFound for unknown or expired tokens.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke is idempotent: revoking an unknown digest succeeds.
	Revoke(context context.Context, tokenHash string) error
}
