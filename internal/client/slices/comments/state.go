// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comments caches comment threads per post.

Comments are normalized like posts: [State.Entities] holds each comment once
and [State.ByPost] holds the newest-first id list of every loaded post.
*/
package comments

import (
	"maps"
	"slices"

	"github.com/taibuivan/yomira-social/internal/social/comment"
)

// State is the comments slice.
type State struct {
	Entities   map[string]*comment.Comment `json:"entities"`
	ByPost     map[string][]string         `json:"byPost"`
	IsLoading  bool                        `json:"isLoading"`
	IsCreating bool                        `json:"isCreating"`
	Error      string                      `json:"error,omitempty"`
}

func Initial() State {
	return State{
		Entities: map[string]*comment.Comment{},
		ByPost:   map[string][]string{},
	}
}

// ForPost returns the cached comments of postID, newest first.
func (state State) ForPost(postID string) []*comment.Comment {
	ids := state.ByPost[postID]
	resolved := make([]*comment.Comment, 0, len(ids))
	for _, id := range ids {
		if entity, ok := state.Entities[id]; ok {
			resolved = append(resolved, entity)
		}
	}
	return resolved
}

// # Events

type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpLike   Op = "like"
)

var defaultMessages = map[Op]string{
	OpList:   "Failed to fetch comments",
	OpGet:    "Failed to fetch comment",
	OpCreate: "Failed to create comment",
	OpUpdate: "Failed to update comment",
	OpDelete: "Failed to delete comment",
	OpLike:   "Failed to toggle like",
}

type Event interface{ commentsEvent() }

type (
	Pending struct{ Op Op }

	// Loaded replaces the thread of PostID.
	Loaded struct {
		PostID   string
		Comments []*comment.Comment
	}

	// Fetched upserts a single comment without touching thread order.
	Fetched struct{ Comment *comment.Comment }

	Created struct{ Comment *comment.Comment }

	Updated struct {
		Op      Op
		Comment *comment.Comment
	}

	Deleted struct {
		ID     string
		PostID string
	}

	Failed struct {
		Op      Op
		Message string
	}

	PostCleared  struct{ PostID string }
	ErrorCleared struct{}
)

func (Pending) commentsEvent()      {}
func (Loaded) commentsEvent()       {}
func (Fetched) commentsEvent()      {}
func (Created) commentsEvent()      {}
func (Updated) commentsEvent()      {}
func (Deleted) commentsEvent()      {}
func (Failed) commentsEvent()       {}
func (PostCleared) commentsEvent()  {}
func (ErrorCleared) commentsEvent() {}

// # Reducer

// Reduce returns the state after event. It never modifies current.
func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		next.Error = ""
		switch event.Op {
		case OpCreate:
			next.IsCreating = true
		case OpList, OpGet:
			next.IsLoading = true
		}

	case Loaded:
		next.IsLoading = false
		next.Entities = upsert(current.Entities, event.Comments...)
		ids := make([]string, 0, len(event.Comments))
		for _, item := range event.Comments {
			ids = append(ids, item.ID)
		}
		next.ByPost = maps.Clone(current.ByPost)
		next.ByPost[event.PostID] = ids

	case Fetched:
		next.IsLoading = false
		next.Entities = upsert(current.Entities, event.Comment)

	case Created:
		next.IsCreating = false
		next.Entities = upsert(current.Entities, event.Comment)
		next.ByPost = maps.Clone(current.ByPost)
		next.ByPost[event.Comment.PostID] = append([]string{event.Comment.ID}, current.ByPost[event.Comment.PostID]...)

	case Updated:
		next.Entities = upsert(current.Entities, event.Comment)

	case Deleted:
		next.Entities = maps.Clone(current.Entities)
		delete(next.Entities, event.ID)
		if ids, ok := current.ByPost[event.PostID]; ok {
			next.ByPost = maps.Clone(current.ByPost)
			next.ByPost[event.PostID] = slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == event.ID })
		}

	case Failed:
		next.Error = event.Message
		if next.Error == "" {
			next.Error = defaultMessages[event.Op]
		}
		switch event.Op {
		case OpCreate:
			next.IsCreating = false
		case OpList, OpGet:
			next.IsLoading = false
		}

	case PostCleared:
		ids := current.ByPost[event.PostID]
		next.ByPost = maps.Clone(current.ByPost)
		delete(next.ByPost, event.PostID)
		next.Entities = maps.Clone(current.Entities)
		for _, id := range ids {
			delete(next.Entities, id)
		}

	case ErrorCleared:
		next.Error = ""
	}

	return next
}

// upsert returns a copy of entities holding incoming, skipping copies older
// than the cached one.
func upsert(entities map[string]*comment.Comment, incoming ...*comment.Comment) map[string]*comment.Comment {
	next := maps.Clone(entities)
	if next == nil {
		next = make(map[string]*comment.Comment, len(incoming))
	}

	for _, candidate := range incoming {
		if cached, ok := next[candidate.ID]; ok && candidate.Version < cached.Version {
			continue
		}
		next[candidate.ID] = candidate
	}
	return next
}
