// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"slices"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/slice"
)

// MemoryCommentRepository implements [CommentRepository] on the mock data store.
type MemoryCommentRepository struct {
	db *mockdb.DB
}

// NewMemoryCommentRepository creates a mock-store backed [CommentRepository].
func NewMemoryCommentRepository(db *mockdb.DB) *MemoryCommentRepository {
	return &MemoryCommentRepository{db: db}
}

func fromRow(tables *mockdb.Tables, row *mockdb.CommentRow, viewerID string) *Comment {
	return &Comment{
		ID:         row.ID,
		PostID:     row.PostID,
		AuthorID:   row.AuthorID,
		Author:     auth.UserFromRow(tables.UserByID(row.AuthorID)),
		ParentID:   row.ParentID,
		Content:    row.Content,
		LikesCount: row.LikesCount,
		IsLiked:    tables.IsLiked(mockdb.LikeComment, row.ID, viewerID),
		Version:    row.Version,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (repository *MemoryCommentRepository) ListByPost(context context.Context, viewerID, postID string) ([]*Comment, error) {
	comments := []*Comment{}
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		rows := slice.Filter(tables.Comments, func(row *mockdb.CommentRow) bool { return row.PostID == postID })
		slices.SortStableFunc(rows, func(a, b *mockdb.CommentRow) int { return b.CreatedAt.Compare(a.CreatedAt) })

		for _, row := range rows {
			comments = append(comments, fromRow(tables, row, viewerID))
		}
		return nil
	})
	return comments, err
}

func (repository *MemoryCommentRepository) FindByID(context context.Context, viewerID, id string) (*Comment, error) {
	var comment *Comment
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		row := tables.CommentByID(id)
		if row == nil {
			return apperr.NotFound("Comment")
		}
		comment = fromRow(tables, row, viewerID)
		return nil
	})
	return comment, err
}

func (repository *MemoryCommentRepository) Create(context context.Context, comment *Comment) (*Comment, error) {
	var created *Comment
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		post := tables.PostByID(comment.PostID)
		if post == nil {
			return apperr.NotFound("Post")
		}
		if tables.UserByID(comment.AuthorID) == nil {
			return apperr.NotFound("User")
		}
		if comment.ParentID != "" {
			parent := tables.CommentByID(comment.ParentID)
			if parent == nil || parent.PostID != comment.PostID {
				return validate.Invalid(FieldParentID, "Must reference a comment on the same post")
			}
		}

		now := repository.db.Now()
		row := &mockdb.CommentRow{
			ID:        comment.ID,
			PostID:    comment.PostID,
			AuthorID:  comment.AuthorID,
			ParentID:  comment.ParentID,
			Content:   comment.Content,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		tables.PrependComment(row)
		post.CommentsCount++
		post.Version++

		created = fromRow(tables, row, comment.AuthorID)
		return nil
	})
	return created, err
}

func (repository *MemoryCommentRepository) UpdateContent(context context.Context, viewerID, id, content string) (*Comment, error) {
	var updated *Comment
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.CommentByID(id)
		if row == nil {
			return apperr.NotFound("Comment")
		}

		row.Content = content
		row.UpdatedAt = repository.db.Now()
		row.Version++

		updated = fromRow(tables, row, viewerID)
		return nil
	})
	return updated, err
}

func (repository *MemoryCommentRepository) Delete(context context.Context, id string) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.CommentByID(id)
		if row == nil {
			return apperr.NotFound("Comment")
		}

		if post := tables.PostByID(row.PostID); post != nil {
			post.CommentsCount = mockdb.Adjust(post.CommentsCount, -1)
			post.Version++
		}
		tables.RemoveComment(id)
		return nil
	})
}

func (repository *MemoryCommentRepository) ToggleLike(context context.Context, userID, id string) (*Comment, error) {
	var toggled *Comment
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.CommentByID(id)
		if row == nil {
			return apperr.NotFound("Comment")
		}

		liked := !tables.IsLiked(mockdb.LikeComment, id, userID)
		tables.SetLiked(mockdb.LikeComment, id, userID, liked)

		delta := -1
		if liked {
			delta = 1
		}
		row.LikesCount = mockdb.Adjust(row.LikesCount, delta)
		row.Version++

		toggled = fromRow(tables, row, userID)
		return nil
	})
	return toggled, err
}
