// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
	"github.com/taibuivan/yomira-social/internal/platform/postgres"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// PostgresCommentRepository implements [CommentRepository] using pgx.
//
// # Schema Table Mapping
//   - social.comment: Comments; postid has no foreign key so comments outlive posts.
//   - social.commentlike: (commentid, userid) like set.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of [CommentRepository].
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// commentSelect projects a comment, the viewer's like flag ($1), and its author.
const commentSelect = `
	SELECT c.id, c.postid, c.authorid, COALESCE(c.parentid, ''), c.content, c.likescount, c.version, c.createdat, c.updatedat,
		EXISTS (SELECT 1 FROM social.commentlike l WHERE l.commentid = c.id AND l.userid = $1),
		` + auth.UserColumns + `
	FROM social.comment c
	JOIN social.account a ON a.id = c.authorid`

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{Author: &auth.User{}}
	targets := append([]any{
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.ParentID,
		&comment.Content,
		&comment.LikesCount,
		&comment.Version,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.IsLiked,
	}, auth.UserScanTargets(comment.Author)...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresCommentRepository) ListByPost(context context.Context, viewerID, postID string) ([]*Comment, error) {
	rows, err := repository.pool.Query(context, commentSelect+` WHERE c.postid = $2 ORDER BY c.createdat DESC, c.seq DESC`, viewerID, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (repository *PostgresCommentRepository) FindByID(context context.Context, viewerID, id string) (*Comment, error) {
	comment, err := scanComment(repository.pool.QueryRow(context, commentSelect+` WHERE c.id = $2`, viewerID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comment, nil
}

/*
Create locks the post row, checks the parent, inserts the comment, and bumps
the post's commentsCount.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - *Comment
  - error: apperr.NotFound, ValidationError, or query failures
*/
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) (*Comment, error) {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var locked bool
		if err := tx.QueryRow(context, `SELECT TRUE FROM social.post WHERE id = $1 FOR UPDATE`, comment.PostID).Scan(&locked); err != nil {
			return dberr.Wrap(err, "Post")
		}

		var parentID *string
		if comment.ParentID != "" {
			var sameThread bool
			err := tx.QueryRow(context, `SELECT postid = $2 FROM social.comment WHERE id = $1`, comment.ParentID, comment.PostID).Scan(&sameThread)
			if err != nil || !sameThread {
				return validate.Invalid(FieldParentID, "Must reference a comment on the same post")
			}
			parentID = &comment.ParentID
		}

		if _, err := tx.Exec(context, `
			INSERT INTO social.comment (id, postid, authorid, parentid, content, likescount, version, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, 0, 1, now(), now())`,
			comment.ID, comment.PostID, comment.AuthorID, parentID, comment.Content,
		); err != nil {
			return err
		}

		_, err := tx.Exec(context, `UPDATE social.post SET commentscount = commentscount + 1, version = version + 1 WHERE id = $1`, comment.PostID)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return repository.FindByID(context, comment.AuthorID, comment.ID)
}

func (repository *PostgresCommentRepository) UpdateContent(context context.Context, viewerID, id, content string) (*Comment, error) {
	tag, err := repository.pool.Exec(context,
		`UPDATE social.comment SET content = $2, updatedat = now(), version = version + 1 WHERE id = $1`,
		id, content,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Comment")
	}

	return repository.FindByID(context, viewerID, id)
}

func (repository *PostgresCommentRepository) Delete(context context.Context, id string) error {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var postID string
		if err := tx.QueryRow(context, `DELETE FROM social.comment WHERE id = $1 RETURNING postid`, id).Scan(&postID); err != nil {
			return err
		}

		_, err := tx.Exec(context,
			`UPDATE social.post SET commentscount = GREATEST(commentscount - 1, 0), version = version + 1 WHERE id = $1`,
			postID,
		)
		return err
	})
	return dberr.Wrap(err, "Comment")
}

func (repository *PostgresCommentRepository) ToggleLike(context context.Context, userID, id string) (*Comment, error) {
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var locked bool
		if err := tx.QueryRow(context, `SELECT TRUE FROM social.comment WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			return err
		}

		tag, err := tx.Exec(context, `DELETE FROM social.commentlike WHERE commentid = $1 AND userid = $2`, id, userID)
		if err != nil {
			return err
		}

		delta := -1
		if tag.RowsAffected() == 0 {
			delta = 1
			if _, err := tx.Exec(context, `INSERT INTO social.commentlike (commentid, userid, createdat) VALUES ($1, $2, now())`, id, userID); err != nil {
				return err
			}
		}

		_, err = tx.Exec(context,
			`UPDATE social.comment SET likescount = GREATEST(likescount + $2, 0), version = version + 1 WHERE id = $1`,
			id, delta,
		)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return repository.FindByID(context, userID, id)
}
