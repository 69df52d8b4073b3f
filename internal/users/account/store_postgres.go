// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/dberr"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
//
// # Schema Table Mapping
//   - social.account: Master identity and profile data.
//   - social.follow: Directed follow edges used for relationship flags.
//   - social.post: Source of received likes and comments.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (repository *PostgresAccountRepository) findOne(context context.Context, where string, arg any) (*auth.User, error) {
	query := `SELECT ` + auth.UserColumns + ` FROM social.account a WHERE ` + where

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, arg))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByID retrieves a user record from the social.account table.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	return repository.findOne(context, `a.id = $1`, id)
}

// FindByUsername retrieves a user record by handle.
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	return repository.findOne(context, `lower(a.username) = lower($1)`, username)
}

/*
Relationship computes both follow directions and the mutual count in one round trip.

Parameters:
  - context: context.Context
  - viewerID: string
  - targetID: string

Returns:
  - Relationship
  - error: Query failures
*/
func (repository *PostgresAccountRepository) Relationship(context context.Context, viewerID, targetID string) (Relationship, error) {
	var relationship Relationship
	if viewerID == "" {
		return relationship, nil
	}

	const query = `
		SELECT
			EXISTS (SELECT 1 FROM social.follow WHERE followerid = $1 AND followingid = $2),
			EXISTS (SELECT 1 FROM social.follow WHERE followerid = $2 AND followingid = $1),
			(SELECT count(*) FROM social.follow v
				JOIN social.follow t ON t.followingid = v.followingid AND t.followerid = $2
				WHERE v.followerid = $1)`

	err := repository.pool.QueryRow(context, query, viewerID, targetID).Scan(
		&relationship.IsFollowing,
		&relationship.IsFollower,
		&relationship.MutualFollows,
	)
	if err != nil {
		return relationship, fmt.Errorf("postgres_account_repo_relationship_failed: %w", err)
	}
	return relationship, nil
}

func (repository *PostgresAccountRepository) collect(rows pgx.Rows) ([]*auth.User, error) {
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

/*
Search matches username, names, and bio with ILIKE.

Parameters:
  - context: context.Context
  - query: string
  - params: pagination.Params

Returns:
  - []*auth.User: One page ordered by creation
  - int: Total matches
  - error: Query failures
*/
func (repository *PostgresAccountRepository) Search(context context.Context, query string, params pagination.Params) ([]*auth.User, int, error) {
	const where = `(a.username ILIKE $1 OR a.firstname ILIKE $1 OR a.lastname ILIKE $1 OR a.bio ILIKE $1)`
	pattern := "%" + query + "%"

	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM social.account a WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_search_count_failed: %w", err)
	}

	rows, err := repository.pool.Query(context,
		`SELECT `+auth.UserColumns+` FROM social.account a WHERE `+where+` ORDER BY a.createdat, a.id LIMIT $2 OFFSET $3`,
		pattern, params.Limit, params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_search_failed: %w", err)
	}

	users, err := repository.collect(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_search_scan_failed: %w", err)
	}
	return users, total, nil
}

// Recommended excludes the viewer and accounts already followed.
func (repository *PostgresAccountRepository) Recommended(context context.Context, viewerID string, limit int) ([]*auth.User, error) {
	query := `
		SELECT ` + auth.UserColumns + `
		FROM social.account a
		WHERE a.id <> $1
		  AND NOT EXISTS (SELECT 1 FROM social.follow f WHERE f.followerid = $1 AND f.followingid = a.id)
		ORDER BY a.followerscount DESC, a.createdat, a.id
		LIMIT $2`

	rows, err := repository.pool.Query(context, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_recommended_failed: %w", err)
	}

	users, err := repository.collect(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_recommended_scan_failed: %w", err)
	}
	return users, nil
}

func (repository *PostgresAccountRepository) Stats(context context.Context, userID string) (*Stats, error) {
	const query = `
		SELECT a.postscount, a.followerscount, a.followingcount,
			COALESCE(SUM(p.likescount), 0), COALESCE(SUM(p.commentscount), 0)
		FROM social.account a
		LEFT JOIN social.post p ON p.authorid = a.id
		WHERE a.id = $1
		GROUP BY a.id`

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&stats.PostsCount,
		&stats.FollowersCount,
		&stats.FollowingCount,
		&stats.LikesReceived,
		&stats.CommentsReceived,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return stats, nil
}

/*
UpdateProfile writes only the provided columns.

Description: COALESCE keeps the stored value for nil inputs, so a single
statement serves every combination of fields.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The row after the update
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	query := `
		UPDATE social.account a
		SET firstname = COALESCE($2, a.firstname),
			lastname  = COALESCE($3, a.lastname),
			bio       = COALESCE($4, a.bio),
			avatar    = COALESCE($5, a.avatar),
			updatedat = now()
		WHERE a.id = $1
		RETURNING ` + auth.UserColumns

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query,
		userID, input.FirstName, input.LastName, input.Bio, input.Avatar,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresAccountRepository) exists(context context.Context, column, value string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM social.account WHERE lower(` + column + `) = lower($1))`
	if err := repository.pool.QueryRow(context, query, value).Scan(&taken); err != nil {
		return false, fmt.Errorf("postgres_account_repo_exists_failed: %w", err)
	}
	return taken, nil
}

func (repository *PostgresAccountRepository) UsernameTaken(context context.Context, username string) (bool, error) {
	return repository.exists(context, "username", username)
}

func (repository *PostgresAccountRepository) EmailTaken(context context.Context, email string) (bool, error) {
	return repository.exists(context, "email", email)
}
