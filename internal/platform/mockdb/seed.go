// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockdb

import (
	_ "embed"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

//go:embed seed.yaml
var defaultSeed []byte

// # Seed Fixture

// Seed is the YAML fixture loaded into a fresh store.
type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Posts    []SeedPost    `yaml:"posts"`
	Comments []SeedComment `yaml:"comments"`
	Follows  []SeedFollow  `yaml:"follows"`
	Likes    []SeedLike    `yaml:"likes"`
}

// SeedUser is an account with a plain-text password, hashed while seeding.
type SeedUser struct {
	ID             string    `yaml:"id"`
	Username       string    `yaml:"username"`
	Email          string    `yaml:"email"`
	Password       string    `yaml:"password"`
	FirstName      string    `yaml:"firstName"`
	LastName       string    `yaml:"lastName"`
	Bio            string    `yaml:"bio"`
	Avatar         string    `yaml:"avatar"`
	Role           string    `yaml:"role"`
	IsVerified     bool      `yaml:"isVerified"`
	FollowersCount int       `yaml:"followersCount"`
	FollowingCount int       `yaml:"followingCount"`
	PostsCount     int       `yaml:"postsCount"`
	CreatedAt      time.Time `yaml:"createdAt"`
	UpdatedAt      time.Time `yaml:"updatedAt"`
}

type SeedPost struct {
	ID            string    `yaml:"id"`
	AuthorID      string    `yaml:"authorId"`
	Content       string    `yaml:"content"`
	LikesCount    int       `yaml:"likesCount"`
	CommentsCount int       `yaml:"commentsCount"`
	CreatedAt     time.Time `yaml:"createdAt"`
	UpdatedAt     time.Time `yaml:"updatedAt"`
}

type SeedComment struct {
	ID         string    `yaml:"id"`
	PostID     string    `yaml:"postId"`
	AuthorID   string    `yaml:"authorId"`
	ParentID   string    `yaml:"parentId"`
	Content    string    `yaml:"content"`
	LikesCount int       `yaml:"likesCount"`
	CreatedAt  time.Time `yaml:"createdAt"`
	UpdatedAt  time.Time `yaml:"updatedAt"`
}

type SeedFollow struct {
	ID          string    `yaml:"id"`
	FollowerID  string    `yaml:"followerId"`
	FollowingID string    `yaml:"followingId"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type SeedLike struct {
	Kind      LikeKind `yaml:"kind"`
	SubjectID string   `yaml:"subjectId"`
	UserID    string   `yaml:"userId"`
}

// DefaultSeed parses the embedded development fixture.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a fixture from disk.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mockdb: failed to read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML fixture.
func ParseSeed(data []byte) (*Seed, error) {
	seed := &Seed{}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("mockdb: invalid seed: %w", err)
	}
	return seed, nil
}

// # Seeding

// NewSeeded creates a store populated from seed.
func NewSeeded(seed *Seed, opts ...Option) (*DB, error) {
	db := New(opts...)
	if err := db.apply(seed); err != nil {
		return nil, err
	}
	return db, nil
}

// NewDefault creates a store populated from the embedded fixture.
func NewDefault(opts ...Option) (*DB, error) {
	seed, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed, opts...)
}

func (db *DB) apply(seed *Seed) error {
	tables := db.tables

	for _, user := range seed.Users {
		hash, err := seedPasswordHash(user.Password)
		if err != nil {
			return err
		}
		tables.Users = append(tables.Users, &UserRow{
			ID:             user.ID,
			Username:       user.Username,
			Email:          user.Email,
			PasswordHash:   hash,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Bio:            user.Bio,
			Avatar:         user.Avatar,
			Role:           string(sec.ParseRole(user.Role)),
			IsVerified:     user.IsVerified,
			FollowersCount: user.FollowersCount,
			FollowingCount: user.FollowingCount,
			PostsCount:     user.PostsCount,
			CreatedAt:      user.CreatedAt,
			UpdatedAt:      orTime(user.UpdatedAt, user.CreatedAt),
		})
	}

	for _, post := range seed.Posts {
		if tables.UserByID(post.AuthorID) == nil {
			return fmt.Errorf("mockdb: seed post %s references unknown author %s", post.ID, post.AuthorID)
		}
		tables.Posts = append(tables.Posts, &PostRow{
			ID:            post.ID,
			AuthorID:      post.AuthorID,
			Content:       post.Content,
			LikesCount:    post.LikesCount,
			CommentsCount: post.CommentsCount,
			Version:       1,
			CreatedAt:     post.CreatedAt,
			UpdatedAt:     orTime(post.UpdatedAt, post.CreatedAt),
		})
	}

	for _, comment := range seed.Comments {
		if tables.PostByID(comment.PostID) == nil {
			return fmt.Errorf("mockdb: seed comment %s references unknown post %s", comment.ID, comment.PostID)
		}
		tables.Comments = append(tables.Comments, &CommentRow{
			ID:         comment.ID,
			PostID:     comment.PostID,
			AuthorID:   comment.AuthorID,
			ParentID:   comment.ParentID,
			Content:    comment.Content,
			LikesCount: comment.LikesCount,
			Version:    1,
			CreatedAt:  comment.CreatedAt,
			UpdatedAt:  orTime(comment.UpdatedAt, comment.CreatedAt),
		})
	}

	for _, follow := range seed.Follows {
		if follow.FollowerID == follow.FollowingID {
			return fmt.Errorf("mockdb: seed follow %s is a self edge", follow.ID)
		}
		if tables.FollowEdge(follow.FollowerID, follow.FollowingID) != nil {
			return fmt.Errorf("mockdb: seed follow %s duplicates an edge", follow.ID)
		}
		tables.Follows = append(tables.Follows, &FollowRow{
			ID:          follow.ID,
			FollowerID:  follow.FollowerID,
			FollowingID: follow.FollowingID,
			CreatedAt:   follow.CreatedAt,
		})
	}

	for _, like := range seed.Likes {
		tables.SetLiked(like.Kind, like.SubjectID, like.UserID, true)
	}

	return nil
}

func orTime(value, fallback time.Time) time.Time {
	if value.IsZero() {
		return fallback
	}
	return value
}

// bcrypt is slow on purpose; tests seed many stores with the same passwords.
var (
	hashCacheMu sync.Mutex
	hashCache   = make(map[string]string)
)

func seedPasswordHash(password string) (string, error) {
	hashCacheMu.Lock()
	defer hashCacheMu.Unlock()

	if hash, ok := hashCache[password]; ok {
		return hash, nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("mockdb: failed to hash seed password: %w", err)
	}
	hashCache[password] = hash
	return hash, nil
}
