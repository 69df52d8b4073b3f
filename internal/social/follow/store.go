// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// FollowRepository persists follow edges.
//
// Follow, Unfollow and Toggle must be atomic with respect to each other for
// the same pair, including the counter updates.
type FollowRepository interface {
	// Follow inserts edge. Conflict when it exists, NotFound when either account is missing.
	Follow(ctx context.Context, edge Edge) (Change, error)

	// Unfollow removes followerID -> followingID. NotFound when there is no edge.
	Unfollow(ctx context.Context, followerID, followingID string) (Change, error)

	// Toggle inserts edge when absent and removes it otherwise.
	Toggle(ctx context.Context, edge Edge) (Change, error)

	Status(ctx context.Context, viewerID, targetID string) (Status, error)

	// Followers lists accounts following userID, oldest edge first.
	Followers(ctx context.Context, userID string, params pagination.Params) ([]*auth.User, int, error)

	// Following lists accounts userID follows, oldest edge first.
	Following(ctx context.Context, userID string, params pagination.Params) ([]*auth.User, int, error)

	// Mutual lists accounts followed by both viewerID and targetID.
	Mutual(ctx context.Context, viewerID, targetID string) ([]*auth.User, error)

	Counts(ctx context.Context, userID string) (Counts, error)
}
