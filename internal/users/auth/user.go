// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for registration,
login, refresh, logout, and password change.

# Architecture

This layer is the "Truth" of the system. Counters on [User] are denormalized
caches maintained by the post and follow domains; they are never authoritative.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the social network.
type User struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName      string       `json:"firstName,omitempty"`
	LastName       string       `json:"lastName,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Avatar         string       `json:"avatar,omitempty"`
	Role           sec.UserRole `json:"role"`
	IsVerified     bool         `json:"isVerified"`
	FollowersCount int          `json:"followersCount"`
	FollowingCount int          `json:"followingCount"`
	PostsCount     int          `json:"postsCount"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// DisplayName returns "First Last", falling back to the username.
func (user *User) DisplayName() string {
	switch {
	case user.FirstName != "" && user.LastName != "":
		return user.FirstName + " " + user.LastName
	case user.FirstName != "":
		return user.FirstName
	default:
		return user.Username
	}
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"tokenHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the session can still mint access tokens at now.
func (session *Session) Active(now time.Time) bool {
	return !session.IsRevoked && now.Before(session.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldRefreshToken    = "refreshToken"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldMessage         = "message"
)
