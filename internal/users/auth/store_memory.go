// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/mockdb"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

// # Row Mapping

// UserFromRow copies a stored account into a [User]. Other domains use it to
// embed author snapshots.
func UserFromRow(row *mockdb.UserRow) *User {
	if row == nil {
		return nil
	}
	return &User{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Bio:            row.Bio,
		Avatar:         row.Avatar,
		Role:           sec.ParseRole(row.Role),
		IsVerified:     row.IsVerified,
		FollowersCount: row.FollowersCount,
		FollowingCount: row.FollowingCount,
		PostsCount:     row.PostsCount,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// # User Repository

// MemoryUserRepository implements [UserRepository] on the mock data store.
type MemoryUserRepository struct {
	db *mockdb.DB
}

// NewMemoryUserRepository creates a mock-store backed [UserRepository].
func NewMemoryUserRepository(db *mockdb.DB) *MemoryUserRepository {
	return &MemoryUserRepository{db: db}
}

func (repository *MemoryUserRepository) find(context context.Context, lookup func(*mockdb.Tables) *mockdb.UserRow) (*User, error) {
	var user *User
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		row := lookup(tables)
		if row == nil {
			return apperr.NotFound("User")
		}
		user = UserFromRow(row)
		return nil
	})
	return user, err
}

func (repository *MemoryUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.find(context, func(tables *mockdb.Tables) *mockdb.UserRow { return tables.UserByID(id) })
}

func (repository *MemoryUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.find(context, func(tables *mockdb.Tables) *mockdb.UserRow { return tables.UserByEmail(email) })
}

func (repository *MemoryUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.find(context, func(tables *mockdb.Tables) *mockdb.UserRow { return tables.UserByUsername(username) })
}

/*
Create appends a new account after re-checking uniqueness inside the same
critical section, so two concurrent registrations cannot both succeed.
*/
func (repository *MemoryUserRepository) Create(context context.Context, user *User) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		if tables.UserByUsername(user.Username) != nil || tables.UserByEmail(user.Email) != nil {
			return apperr.DuplicateAccount("User already exists")
		}

		now := repository.db.Now()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now

		tables.Users = append(tables.Users, &mockdb.UserRow{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Bio:          user.Bio,
			Avatar:       user.Avatar,
			Role:         string(user.Role),
			IsVerified:   user.IsVerified,
			CreatedAt:    user.CreatedAt,
			UpdatedAt:    user.UpdatedAt,
		})
		return nil
	})
}

func (repository *MemoryUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		row := tables.UserByID(userID)
		if row == nil {
			return apperr.NotFound("User")
		}
		row.PasswordHash = newHash
		row.UpdatedAt = repository.db.Now()
		return nil
	})
}

// # Session Repository

// MemorySessionRepository implements [SessionRepository] on the mock data store.
type MemorySessionRepository struct {
	db *mockdb.DB
}

// NewMemorySessionRepository creates a mock-store backed [SessionRepository].
func NewMemorySessionRepository(db *mockdb.DB) *MemorySessionRepository {
	return &MemorySessionRepository{db: db}
}

func (repository *MemorySessionRepository) Create(context context.Context, session *Session) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		if session.CreatedAt.IsZero() {
			session.CreatedAt = repository.db.Now()
		}
		tables.Sessions[session.TokenHash] = &mockdb.SessionRow{
			ID:        session.ID,
			UserID:    session.UserID,
			TokenHash: session.TokenHash,
			ExpiresAt: session.ExpiresAt,
			IsRevoked: session.IsRevoked,
			CreatedAt: session.CreatedAt,
		}
		return nil
	})
}

func (repository *MemorySessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	var session *Session
	err := repository.db.Read(context, func(tables *mockdb.Tables) error {
		row, ok := tables.Sessions[tokenHash]
		if !ok {
			return apperr.NotFound("Session")
		}
		session = &Session{
			ID:        row.ID,
			UserID:    row.UserID,
			TokenHash: row.TokenHash,
			ExpiresAt: row.ExpiresAt,
			IsRevoked: row.IsRevoked,
			CreatedAt: row.CreatedAt,
		}
		return nil
	})
	return session, err
}

func (repository *MemorySessionRepository) Revoke(context context.Context, tokenHash string) error {
	return repository.db.Write(context, func(tables *mockdb.Tables) error {
		if row, ok := tables.Sessions[tokenHash]; ok {
			row.IsRevoked = true
		}
		return nil
	})
}
