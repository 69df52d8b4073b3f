// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/social/comment"
	"github.com/taibuivan/yomira-social/internal/social/follow"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/account"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// # Repository Sets

// Stores bundles one implementation of every domain repository.
type Stores struct {
	Users         auth.UserRepository
	Sessions      auth.SessionRepository
	Accounts      account.AccountRepository
	Posts         post.PostRepository
	Comments      comment.CommentRepository
	Follows       follow.FollowRepository
	Verifications verification.VerificationRepository
}

// MemoryStores backs every domain with the mock data store.
func MemoryStores(db *mockdb.DB) Stores {
	return Stores{
		Users:         auth.NewMemoryUserRepository(db),
		Sessions:      auth.NewMemorySessionRepository(db),
		Accounts:      account.NewMemoryAccountRepository(db),
		Posts:         post.NewMemoryPostRepository(db),
		Comments:      comment.NewMemoryCommentRepository(db),
		Follows:       follow.NewMemoryFollowRepository(db),
		Verifications: verification.NewMemoryVerificationRepository(db),
	}
}

// PostgresStores backs every domain with PostgreSQL.
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:         auth.NewUserRepository(pool),
		Sessions:      auth.NewSessionRepository(pool),
		Accounts:      account.NewAccountRepository(pool),
		Posts:         post.NewPostRepository(pool),
		Comments:      comment.NewCommentRepository(pool),
		Follows:       follow.NewFollowRepository(pool),
		Verifications: verification.NewVerificationRepository(pool),
	}
}

// # Domain Wiring

/*
NewHandlers builds every domain service and handler over stores.

Parameters:
  - stores: Stores
  - tokens: auth.TokenProvider (access token signer)
  - settings: auth.Settings
  - logger: *slog.Logger

Returns:
  - Handlers: Without the health probes, which depend on the infrastructure
*/
func NewHandlers(stores Stores, tokens auth.TokenProvider, settings auth.Settings, logger *slog.Logger) Handlers {
	authService := auth.NewService(stores.Users, stores.Sessions, tokens, settings, logger)

	return Handlers{
		Auth:         auth.NewHandler(authService),
		Account:      account.NewHandler(account.NewService(stores.Accounts, logger)),
		Post:         post.NewHandler(post.NewService(stores.Posts, logger)),
		Comment:      comment.NewHandler(comment.NewService(stores.Comments, logger)),
		Follow:       follow.NewHandler(follow.NewService(stores.Follows, logger)),
		Verification: verification.NewHandler(verification.NewService(stores.Verifications, stores.Users, logger)),
	}
}
