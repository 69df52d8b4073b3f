// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// AccountReader resolves the account being verified.
type AccountReader interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// VerificationRepository persists verification requests.
type VerificationRepository interface {
	// FindByUser returns the latest request of userID, or NotFound when there is none.
	FindByUser(ctx context.Context, userID string) (*Request, error)

	// Submit records a pending request. Conflict when the current one is
	// pending or approved, or the account is already verified.
	Submit(ctx context.Context, userID string) (*Request, error)

	// Review settles a pending request. Conflict when none is pending.
	// Approval also marks the account verified.
	Review(ctx context.Context, userID string, approve bool, reason string) (*Request, error)

	// VerifiedUsers lists verified accounts in store order.
	VerifiedUsers(ctx context.Context, params pagination.Params) ([]*auth.User, int, error)
}
