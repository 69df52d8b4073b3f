// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
	"github.com/taibuivan/yomira-social/pkg/slice"
)

// MemoryVerificationRepository implements [VerificationRepository] on the mock data store.
type MemoryVerificationRepository struct {
	db *mockdb.DB
}

// NewMemoryVerificationRepository creates a mock-store backed [VerificationRepository].
func NewMemoryVerificationRepository(db *mockdb.DB) *MemoryVerificationRepository {
	return &MemoryVerificationRepository{db: db}
}

func fromRow(row *mockdb.VerificationRow) *Request {
	return &Request{
		UserID:      row.UserID,
		Status:      Status(row.Status),
		SubmittedAt: row.SubmittedAt,
		ReviewedAt:  row.ReviewedAt,
		Reason:      row.Reason,
	}
}

func (repository *MemoryVerificationRepository) FindByUser(context context.Context, userID string) (*Request, error) {
	var request *Request
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		row, ok := tables.Verifications[userID]
		if !ok {
			return apperr.NotFound("Verification request")
		}
		request = fromRow(row)
		return nil
	})
	return request, err
}

func (repository *MemoryVerificationRepository) Submit(context context.Context, userID string) (*Request, error) {
	var request *Request
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		user := tables.UserByID(userID)
		if user == nil {
			return apperr.NotFound("User")
		}
		if user.IsVerified {
			return apperr.Conflict("Account is already verified")
		}
		if row, ok := tables.Verifications[userID]; ok && Status(row.Status).Blocks() {
			return apperr.Conflict("Verification request already " + row.Status)
		}

		now := repository.db.Now()
		row := &mockdb.VerificationRow{UserID: userID, Status: string(StatusPending), SubmittedAt: &now}
		tables.Verifications[userID] = row

		request = fromRow(row)
		return nil
	})
	return request, err
}

func (repository *MemoryVerificationRepository) Review(context context.Context, userID string, approve bool, reason string) (*Request, error) {
	var request *Request
	err := repository.db.Write(context, func(tables *mockdb.Tables) error {
		row, ok := tables.Verifications[userID]
		if !ok || Status(row.Status) != StatusPending {
			return apperr.Conflict("No pending verification request")
		}

		now := repository.db.Now()
		row.ReviewedAt = &now
		row.Status = string(StatusRejected)
		row.Reason = reason

		if approve {
			row.Status = string(StatusApproved)
			row.Reason = ""
			if user := tables.UserByID(userID); user != nil {
				user.IsVerified = true
				user.UpdatedAt = now
			}
		}

		request = fromRow(row)
		return nil
	})
	return request, err
}

func (repository *MemoryVerificationRepository) VerifiedUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	var (
		users []*auth.User
		total int
	)
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		verified := slice.Filter(tables.Users, func(row *mockdb.UserRow) bool { return row.IsVerified })
		page, _ := pagination.Slice(verified, params)
		users = slice.Map(page, auth.UserFromRow)
		total = len(verified)
		return nil
	})
	return users, total, err
}
