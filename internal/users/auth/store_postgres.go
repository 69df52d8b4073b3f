// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
)

// UserColumns is the canonical projection of social.account, shared with the
// other domains that embed author snapshots.
const UserColumns = `a.id, a.username, a.email, a.passwordhash, a.firstname, a.lastname, a.bio, a.avatar,
	a.role, a.isverified, a.followerscount, a.followingcount, a.postscount, a.createdat, a.updatedat`

// ScanUser reads one [UserColumns] projection from row.
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	if err := row.Scan(UserScanTargets(user)...); err != nil {
		return nil, err
	}
	return user, nil
}

// UserScanTargets returns the destinations for [UserColumns], in order, so a
// wider projection can scan an embedded author in the same row.
func UserScanTargets(user *User) []any {
	return []any{
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Avatar,
		&user.Role,
		&user.IsVerified,
		&user.FollowersCount,
		&user.FollowingCount,
		&user.PostsCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the social.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.DuplicateAccount on unique violations, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO social.account (
			id, username, email, passwordhash, firstname, lastname, bio, avatar, role, isverified, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Avatar,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateAccount("User already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresUserRepository) findOne(context context.Context, where string, arg any) (*User, error) {
	query := `SELECT ` + UserColumns + ` FROM social.account a WHERE ` + where

	user, err := ScanUser(repository.pool.QueryRow(context, query, arg))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, `a.id = $1`, id)
}

// FindByEmail retrieves a user record by email (case-insensitive).
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, `lower(a.email) = lower($1)`, email)
}

// FindByUsername retrieves a user record by username (case-insensitive).
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, `lower(a.username) = lower($1)`, username)
}

// UpdatePassword replaces the stored bcrypt hash.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `UPDATE social.account SET passwordhash = $2, updatedat = now() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements SessionRepository using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO social.session (id, userid, tokenhash, expiresat, isrevoked, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.TokenHash, session.ExpiresAt, session.IsRevoked, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, userid, tokenhash, expiresat, isrevoked, createdat
		FROM social.session
		WHERE tokenhash = $1`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, tokenHash string) error {
	const query = `UPDATE social.session SET isrevoked = TRUE WHERE tokenhash = $1`

	if _, err := repository.pool.Exec(context, query, tokenHash); err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	return nil
}
