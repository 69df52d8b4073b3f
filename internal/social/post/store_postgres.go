// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
	"github.com/taibuivan/yomira-social/internal/platform/postgres"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// PostgresPostRepository implements [PostRepository] using pgx.
//
// # Schema Table Mapping
//   - social.post: Posts with denormalized counters; seq preserves insert order.
//   - social.postlike: (postid, userid) like set.
//   - social.account: Embedded author snapshot.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of [PostRepository].
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// postSelect projects a post, the viewer's like flag ($1), and its author.
const postSelect = `
	SELECT p.id, p.authorid, p.content, p.likescount, p.commentscount, p.version, p.createdat, p.updatedat,
		EXISTS (SELECT 1 FROM social.postlike l WHERE l.postid = p.id AND l.userid = $1),
		` + auth.UserColumns + `
	FROM social.post p
	JOIN social.account a ON a.id = p.authorid`

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{Author: &auth.User{}}
	targets := append([]any{
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.LikesCount,
		&post.CommentsCount,
		&post.Version,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.IsLiked,
	}, auth.UserScanTargets(post.Author)...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return post, nil
}

func orderClause(ordering Ordering) string {
	switch ordering {
	case ByLikes:
		return ` ORDER BY p.likescount DESC, p.createdat DESC, p.seq DESC`
	case InStoreOrder:
		return ` ORDER BY p.seq DESC`
	default:
		return ` ORDER BY p.createdat DESC, p.seq DESC`
	}
}

// whereClause renders filter with placeholders numbered from first.
func whereClause(filter Filter, first int) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("p.authorid = $%d", first+len(args)))
		args = append(args, filter.AuthorID)
	}
	if filter.Query != "" {
		n := first + len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.content ILIKE $%d OR a.username ILIKE $%d OR a.firstname ILIKE $%d OR a.lastname ILIKE $%d)", n, n, n, n,
		))
		args = append(args, "%"+filter.Query+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

/*
List builds the WHERE clause from filter and pages with LIMIT/OFFSET.

Parameters:
  - context: context.Context
  - viewerID: string
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Post
  - int: Total matches
  - error: Query failures
*/
func (repository *PostgresPostRepository) List(context context.Context, viewerID string, filter Filter, params pagination.Params) ([]*Post, int, error) {
	var total int
	countWhere, countArgs := whereClause(filter, 1)
	countQuery := `SELECT count(*) FROM social.post p JOIN social.account a ON a.id = p.authorid` + countWhere
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	// $1 is the viewer in postSelect.
	where, filterArgs := whereClause(filter, 2)
	args := append([]any{viewerID}, filterArgs...)
	args = append(args, params.Limit, params.Offset())
	query := postSelect + where + orderClause(filter.Ordering) + fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

func (repository *PostgresPostRepository) FindByID(context context.Context, viewerID, id string) (*Post, error) {
	post, err := scanPost(repository.pool.QueryRow(context, postSelect+` WHERE p.id = $2`, viewerID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}
	return post, nil
}

/*
Create inserts the post and bumps the author's postsCount in one transaction.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - *Post: Stored row re-read with its author
  - error: apperr.NotFound (author) or query failures
*/
func (repository *PostgresPostRepository) Create(context context.Context, post *Post) (*Post, error) {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, `UPDATE social.account SET postscount = postscount + 1 WHERE id = $1`, post.AuthorID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("User")
		}

		_, err = tx.Exec(context, `
			INSERT INTO social.post (id, authorid, content, likescount, commentscount, version, createdat, updatedat)
			VALUES ($1, $2, $3, 0, 0, 1, now(), now())`,
			post.ID, post.AuthorID, post.Content,
		)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	return repository.FindByID(context, post.AuthorID, post.ID)
}

func (repository *PostgresPostRepository) UpdateContent(context context.Context, viewerID, id, content string) (*Post, error) {
	tag, err := repository.pool.Exec(context,
		`UPDATE social.post SET content = $2, updatedat = now(), version = version + 1 WHERE id = $1`,
		id, content,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Post")
	}

	return repository.FindByID(context, viewerID, id)
}

// Delete relies on ON DELETE CASCADE for social.postlike.
func (repository *PostgresPostRepository) Delete(context context.Context, id string) error {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var authorID string
		if err := tx.QueryRow(context, `DELETE FROM social.post WHERE id = $1 RETURNING authorid`, id).Scan(&authorID); err != nil {
			return err
		}

		_, err := tx.Exec(context, `UPDATE social.account SET postscount = GREATEST(postscount - 1, 0) WHERE id = $1`, authorID)
		return err
	})
	return dberr.Wrap(err, "Post")
}

/*
ToggleLike locks the post row, flips the like, and adjusts the counter.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - *Post: Post after the toggle
  - error: apperr.NotFound or query failures
*/
func (repository *PostgresPostRepository) ToggleLike(context context.Context, userID, id string) (*Post, error) {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(context, `SELECT TRUE FROM social.post WHERE id = $1 FOR UPDATE`, id).Scan(&exists); err != nil {
			return err
		}

		tag, err := tx.Exec(context, `DELETE FROM social.postlike WHERE postid = $1 AND userid = $2`, id, userID)
		if err != nil {
			return err
		}

		delta := -1
		if tag.RowsAffected() == 0 {
			delta = 1
			if _, err := tx.Exec(context, `INSERT INTO social.postlike (postid, userid, createdat) VALUES ($1, $2, now())`, id, userID); err != nil {
				return err
			}
		}

		_, err = tx.Exec(context,
			`UPDATE social.post SET likescount = GREATEST(likescount + $2, 0), version = version + 1 WHERE id = $1`,
			id, delta,
		)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	return repository.FindByID(context, userID, id)
}
