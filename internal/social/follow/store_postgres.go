// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
	"github.com/taibuivan/yomira-social/internal/platform/postgres"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// PostgresFollowRepository implements [FollowRepository] using pgx.
//
// # Schema Table Mapping
//   - social.follow: Edges; UNIQUE(followerid, followingid) and a no-self CHECK.
//   - social.account: followerscount / followingcount caches.
type PostgresFollowRepository struct {
	pool *pgxpool.Pool
}

// NewFollowRepository creates a new PostgreSQL implementation of [FollowRepository].
func NewFollowRepository(pool *pgxpool.Pool) *PostgresFollowRepository {
	return &PostgresFollowRepository{pool: pool}
}

// # Edge Writes

// lockPair locks both account rows in id order so concurrent writes on the
// same pair serialize without deadlocking.
func lockPair(context context.Context, tx pgx.Tx, followerID, followingID string) error {
	var locked int
	err := tx.QueryRow(context, `
		SELECT count(*) FROM (
			SELECT id FROM social.account WHERE id IN ($1, $2) ORDER BY id FOR UPDATE
		) l`, followerID, followingID).Scan(&locked)
	if err != nil {
		return err
	}
	if locked != 2 {
		return apperr.NotFound("User")
	}
	return nil
}

func linkTx(context context.Context, tx pgx.Tx, edge Edge) error {
	if _, err := tx.Exec(context,
		`INSERT INTO social.follow (id, followerid, followingid, createdat) VALUES ($1, $2, $3, now())`,
		edge.ID, edge.FollowerID, edge.FollowingID,
	); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Already following")
		}
		return err
	}
	return adjustCounters(context, tx, edge.FollowerID, edge.FollowingID, 1)
}

func unlinkTx(context context.Context, tx pgx.Tx, followerID, followingID string) (bool, error) {
	tag, err := tx.Exec(context, `DELETE FROM social.follow WHERE followerid = $1 AND followingid = $2`, followerID, followingID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	return true, adjustCounters(context, tx, followerID, followingID, -1)
}

func adjustCounters(context context.Context, tx pgx.Tx, followerID, followingID string, delta int) error {
	if _, err := tx.Exec(context,
		`UPDATE social.account SET followingcount = GREATEST(followingcount + $2, 0) WHERE id = $1`,
		followerID, delta,
	); err != nil {
		return err
	}
	_, err := tx.Exec(context,
		`UPDATE social.account SET followerscount = GREATEST(followerscount + $2, 0) WHERE id = $1`,
		followingID, delta,
	)
	return err
}

func (repository *PostgresFollowRepository) change(context context.Context, followerID, followingID string) (Change, error) {
	status, err := repository.Status(context, followerID, followingID)
	if err != nil {
		return Change{}, err
	}

	user, err := auth.ScanUser(repository.pool.QueryRow(context,
		`SELECT `+auth.UserColumns+` FROM social.account a WHERE a.id = $1`, followingID))
	if err != nil {
		return Change{}, dberr.Wrap(err, "User")
	}

	return Change{Status: status, User: user}, nil
}

func (repository *PostgresFollowRepository) write(context context.Context, followerID, followingID string, fn func(tx pgx.Tx) error) (Change, error) {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if err := lockPair(context, tx, followerID, followingID); err != nil {
			return err
		}
		return fn(tx)
	})
	if err != nil {
		return Change{}, dberr.Wrap(err, "Follow")
	}
	return repository.change(context, followerID, followingID)
}

func (repository *PostgresFollowRepository) Follow(context context.Context, edge Edge) (Change, error) {
	return repository.write(context, edge.FollowerID, edge.FollowingID, func(tx pgx.Tx) error {
		return linkTx(context, tx, edge)
	})
}

func (repository *PostgresFollowRepository) Unfollow(context context.Context, followerID, followingID string) (Change, error) {
	return repository.write(context, followerID, followingID, func(tx pgx.Tx) error {
		removed, err := unlinkTx(context, tx, followerID, followingID)
		if err != nil {
			return err
		}
		if !removed {
			return apperr.NotFound("Not following")
		}
		return nil
	})
}

func (repository *PostgresFollowRepository) Toggle(context context.Context, edge Edge) (Change, error) {
	return repository.write(context, edge.FollowerID, edge.FollowingID, func(tx pgx.Tx) error {
		removed, err := unlinkTx(context, tx, edge.FollowerID, edge.FollowingID)
		if err != nil || removed {
			return err
		}
		return linkTx(context, tx, edge)
	})
}

// # Reads

func (repository *PostgresFollowRepository) Status(context context.Context, viewerID, targetID string) (Status, error) {
	var exists, isFollowing, isFollower bool
	err := repository.pool.QueryRow(context, `
		SELECT
			EXISTS (SELECT 1 FROM social.account WHERE id = $2),
			EXISTS (SELECT 1 FROM social.follow WHERE followerid = $1 AND followingid = $2),
			EXISTS (SELECT 1 FROM social.follow WHERE followerid = $2 AND followingid = $1)`,
		viewerID, targetID,
	).Scan(&exists, &isFollowing, &isFollower)
	if err != nil {
		return Status{}, fmt.Errorf("postgres_follow_repo_status_failed: %w", err)
	}
	if !exists {
		return Status{}, apperr.NotFound("User")
	}
	if viewerID == "" {
		return Status{}, nil
	}
	return NewStatus(isFollowing, isFollower), nil
}

func (repository *PostgresFollowRepository) queryUsers(context context.Context, query string, args ...any) ([]*auth.User, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, err
	}
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

// page lists one side of the edges whose matchColumn equals userID.
func (repository *PostgresFollowRepository) page(context context.Context, userID, matchColumn, joinColumn string, params pagination.Params) ([]*auth.User, int, error) {
	var (
		exists bool
		total  int
	)
	if err := repository.pool.QueryRow(context, `
		SELECT EXISTS (SELECT 1 FROM social.account WHERE id = $1),
			(SELECT count(*) FROM social.follow WHERE `+matchColumn+` = $1)`,
		userID,
	).Scan(&exists, &total); err != nil {
		return nil, 0, fmt.Errorf("postgres_follow_repo_count_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("User")
	}

	users, err := repository.queryUsers(context, `
		SELECT `+auth.UserColumns+`
		FROM social.follow f
		JOIN social.account a ON a.id = f.`+joinColumn+`
		WHERE f.`+matchColumn+` = $1
		ORDER BY f.createdat, f.id
		LIMIT $2 OFFSET $3`,
		userID, params.Limit, params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_follow_repo_list_failed: %w", err)
	}
	return users, total, nil
}

func (repository *PostgresFollowRepository) Followers(context context.Context, userID string, params pagination.Params) ([]*auth.User, int, error) {
	return repository.page(context, userID, "followingid", "followerid", params)
}

func (repository *PostgresFollowRepository) Following(context context.Context, userID string, params pagination.Params) ([]*auth.User, int, error) {
	return repository.page(context, userID, "followerid", "followingid", params)
}

func (repository *PostgresFollowRepository) Mutual(context context.Context, viewerID, targetID string) ([]*auth.User, error) {
	users, err := repository.queryUsers(context, `
		SELECT `+auth.UserColumns+`
		FROM social.follow v
		JOIN social.follow t ON t.followingid = v.followingid AND t.followerid = $2
		JOIN social.account a ON a.id = v.followingid
		WHERE v.followerid = $1
		ORDER BY v.createdat, v.id`,
		viewerID, targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_follow_repo_mutual_failed: %w", err)
	}
	return users, nil
}

func (repository *PostgresFollowRepository) Counts(context context.Context, userID string) (Counts, error) {
	var (
		exists bool
		counts Counts
	)
	err := repository.pool.QueryRow(context, `
		SELECT
			EXISTS (SELECT 1 FROM social.account WHERE id = $1),
			(SELECT count(*) FROM social.follow WHERE followingid = $1),
			(SELECT count(*) FROM social.follow WHERE followerid = $1)`,
		userID,
	).Scan(&exists, &counts.Followers, &counts.Following)
	if err != nil {
		return Counts{}, fmt.Errorf("postgres_follow_repo_counts_failed: %w", err)
	}
	if !exists {
		return Counts{}, apperr.NotFound("User")
	}
	return counts, nil
}
