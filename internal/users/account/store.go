// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for public profiles.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// FindByUsername retrieves a user record by exact (case-insensitive) handle.
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Relationship computes the follow flags between viewer and target.

		Parameters:
		  - context: context.Context
		  - viewerID: string (empty for anonymous)
		  - targetID: string

		Returns:
		  - Relationship: All false for anonymous viewers
		  - error: Storage failures
	*/
	Relationship(context context.Context, viewerID, targetID string) (Relationship, error)

	/*
		Search returns one page of accounts whose username, names, or bio
		contain query (case-insensitive), in store order.

		Parameters:
		  - context: context.Context
		  - query: string
		  - params: pagination.Params

		Returns:
		  - []*auth.User: Page of matches
		  - int: Total number of matches
		  - error: Storage failures
	*/
	Search(context context.Context, query string, params pagination.Params) ([]*auth.User, int, error)

	/*
		Recommended lists accounts that viewerID does not follow, excluding
		viewerID itself, ordered by followers count descending.

		Parameters:
		  - context: context.Context
		  - viewerID: string (empty for anonymous)
		  - limit: int

		Returns:
		  - []*auth.User
		  - error: Storage failures
	*/
	Recommended(context context.Context, viewerID string, limit int) ([]*auth.User, error)

	// Stats aggregates counters and received engagement for userID.
	Stats(context context.Context, userID string) (*Stats, error)

	/*
		UpdateProfile applies the non-nil fields of input and refreshes updatedAt.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - input: UpdateProfileInput

		Returns:
		  - *auth.User: The updated account
		  - error: apperr.NotFound or storage failures
	*/
	UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error)

	// UsernameTaken reports whether any account uses username (case-insensitive).
	UsernameTaken(context context.Context, username string) (bool, error)

	// EmailTaken reports whether any account uses email (case-insensitive).
	EmailTaken(context context.Context, email string) (bool, error)
}
