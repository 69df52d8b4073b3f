// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package posts is the client-side post cache.

# Normalization

Posts live once in [State.Entities]. The feed, explore, per-user and search
views hold ids only, so a like or an edit is visible in every view after one
reducer step, and a delete removes the id from all of them.

# Staleness

Every server write bumps [post.Post.Version]. An incoming copy older than the
cached one is dropped, so a slow response cannot roll back a newer edit.
*/
package posts

import (
	"maps"
	"slices"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/social/post"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// # State

// View is an ordered list of post ids plus its pagination position.
type View struct {
	IDs         []string `json:"ids"`
	Page        int      `json:"page"`
	Total       int      `json:"total"`
	HasNextPage bool     `json:"hasNextPage"`
	NextCursor  *string  `json:"nextCursor"`
}

// SearchView is the last completed post search.
type SearchView struct {
	Query string `json:"query"`
	View
}

// State is the posts slice.
type State struct {
	Entities   map[string]*post.Post `json:"entities"`
	Feed       View                  `json:"feed"`
	Explore    View                  `json:"explore"`
	UserPosts  map[string]View       `json:"userPosts"`
	Search     *SearchView           `json:"searchResults"`
	CurrentID  string                `json:"currentPostId,omitempty"`
	IsLoading  bool                  `json:"isLoading"`
	IsCreating bool                  `json:"isCreating"`
	Error      string                `json:"error,omitempty"`
}

// Initial is the empty state.
func Initial() State {
	return State{
		Entities:  map[string]*post.Post{},
		UserPosts: map[string]View{},
	}
}

// # Selectors

// Resolve maps view ids to cached posts, skipping ids no longer cached.
func (state State) Resolve(view View) []*post.Post {
	resolved := make([]*post.Post, 0, len(view.IDs))
	for _, id := range view.IDs {
		if entity, ok := state.Entities[id]; ok {
			resolved = append(resolved, entity)
		}
	}
	return resolved
}

func (state State) FeedPosts() []*post.Post    { return state.Resolve(state.Feed) }
func (state State) ExplorePosts() []*post.Post { return state.Resolve(state.Explore) }

// UserPostsOf returns the cached posts of authorID.
func (state State) UserPostsOf(authorID string) []*post.Post {
	return state.Resolve(state.UserPosts[authorID])
}

// SearchPosts returns the posts of the last search, or nil.
func (state State) SearchPosts() []*post.Post {
	if state.Search == nil {
		return nil
	}
	return state.Resolve(state.Search.View)
}

// Current returns the post opened with GetPostByID, or nil.
func (state State) Current() *post.Post {
	return state.Entities[state.CurrentID]
}

// # Events

// Op names the asynchronous operation an event belongs to.
type Op string

const (
	OpFeed      Op = "feed"
	OpExplore   Op = "explore"
	OpUserPosts Op = "userPosts"
	OpSearch    Op = "search"
	OpGet       Op = "get"
	OpStats     Op = "stats"
	OpCreate    Op = "create"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpLike      Op = "like"
)

var defaultMessages = map[Op]string{
	OpFeed:      "Failed to fetch feed",
	OpExplore:   "Failed to fetch explore posts",
	OpUserPosts: "Failed to fetch user posts",
	OpSearch:    "Search failed",
	OpGet:       "Failed to fetch post",
	OpStats:     "Failed to fetch post stats",
	OpCreate:    "Failed to create post",
	OpUpdate:    "Failed to update post",
	OpDelete:    "Failed to delete post",
	OpLike:      "Failed to toggle like",
}

// loads are the operations that raise IsLoading.
var loads = []Op{OpFeed, OpExplore, OpUserPosts, OpSearch, OpGet}

type Event interface{ postsEvent() }

type (
	Pending struct{ Op Op }

	// PageLoaded installs one page of a listing. Page 1 replaces the view;
	// later pages append ids not already present.
	PageLoaded struct {
		Op     Op
		UserID string
		Query  string
		Page   remote.Page[*post.Post]
	}

	// PostLoaded upserts one post; Current also makes it the current post.
	PostLoaded struct {
		Post    *post.Post
		Current bool
	}

	Created struct{ Post *post.Post }

	// Updated upserts the server copy after an edit or a like.
	Updated struct {
		Op   Op
		Post *post.Post
	}

	Deleted struct{ ID string }

	// CommentsCounted adjusts a cached commentsCount, clamped at zero.
	CommentsCounted struct {
		PostID string
		Delta  int
	}

	Failed struct {
		Op      Op
		Message string
	}

	SearchCleared  struct{}
	CurrentCleared struct{}
	ErrorCleared   struct{}
)

func (Pending) postsEvent()         {}
func (PageLoaded) postsEvent()      {}
func (PostLoaded) postsEvent()      {}
func (Created) postsEvent()         {}
func (Updated) postsEvent()         {}
func (Deleted) postsEvent()         {}
func (CommentsCounted) postsEvent() {}
func (Failed) postsEvent()          {}
func (SearchCleared) postsEvent()   {}
func (CurrentCleared) postsEvent()  {}
func (ErrorCleared) postsEvent()    {}

// # Reducer

// Reduce returns the state after event. It never modifies current: maps and
// id slices are copied before writing.
func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		next.Error = ""
		switch {
		case event.Op == OpCreate:
			next.IsCreating = true
		case slices.Contains(loads, event.Op):
			next.IsLoading = true
		}

	case PageLoaded:
		next.IsLoading = false
		next.Entities = upsert(current.Entities, event.Page.Items...)

		switch event.Op {
		case OpFeed:
			next.Feed = extend(current.Feed, event.Page)
		case OpExplore:
			next.Explore = extend(current.Explore, event.Page)
		case OpUserPosts:
			next.UserPosts = maps.Clone(current.UserPosts)
			next.UserPosts[event.UserID] = extend(current.UserPosts[event.UserID], event.Page)
		case OpSearch:
			base := View{}
			if current.Search != nil && current.Search.Query == event.Query {
				base = current.Search.View
			}
			next.Search = &SearchView{Query: event.Query, View: extend(base, event.Page)}
		}

	case PostLoaded:
		next.IsLoading = false
		next.Entities = upsert(current.Entities, event.Post)
		if event.Current {
			next.CurrentID = event.Post.ID
		}

	case Created:
		next.IsCreating = false
		next.Entities = upsert(current.Entities, event.Post)
		next.Feed = prepend(current.Feed, event.Post.ID)
		if view, ok := current.UserPosts[event.Post.AuthorID]; ok {
			next.UserPosts = maps.Clone(current.UserPosts)
			next.UserPosts[event.Post.AuthorID] = prepend(view, event.Post.ID)
		}

	case Updated:
		next.Entities = upsert(current.Entities, event.Post)

	case Deleted:
		next.Entities = maps.Clone(current.Entities)
		delete(next.Entities, event.ID)

		next.Feed = without(current.Feed, event.ID)
		next.Explore = without(current.Explore, event.ID)
		next.UserPosts = make(map[string]View, len(current.UserPosts))
		for userID, view := range current.UserPosts {
			next.UserPosts[userID] = without(view, event.ID)
		}
		if current.Search != nil {
			next.Search = &SearchView{Query: current.Search.Query, View: without(current.Search.View, event.ID)}
		}
		if current.CurrentID == event.ID {
			next.CurrentID = ""
		}

	case CommentsCounted:
		cached, ok := current.Entities[event.PostID]
		if !ok {
			break
		}
		adjusted := *cached
		adjusted.CommentsCount = max(0, adjusted.CommentsCount+event.Delta)
		next.Entities = maps.Clone(current.Entities)
		next.Entities[event.PostID] = &adjusted

	case Failed:
		next.Error = event.Message
		if next.Error == "" {
			next.Error = defaultMessages[event.Op]
		}
		switch {
		case event.Op == OpCreate:
			next.IsCreating = false
		case slices.Contains(loads, event.Op):
			next.IsLoading = false
		}

	case SearchCleared:
		next.Search = nil

	case CurrentCleared:
		next.CurrentID = ""

	case ErrorCleared:
		next.Error = ""
	}

	return next
}

// # Reducer Helpers

// upsert returns a copy of entities holding incoming, skipping any copy older
// than the cached one.
func upsert(entities map[string]*post.Post, incoming ...*post.Post) map[string]*post.Post {
	next := maps.Clone(entities)
	if next == nil {
		next = make(map[string]*post.Post, len(incoming))
	}

	for _, candidate := range incoming {
		if candidate == nil {
			continue
		}
		if cached, ok := next[candidate.ID]; ok && candidate.Version < cached.Version {
			continue
		}
		next[candidate.ID] = candidate
	}
	return next
}

func extend(view View, page remote.Page[*post.Post]) View {
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}

	if page.Meta.Page > pagination.DefaultPage {
		merged := slices.Clone(view.IDs)
		for _, id := range ids {
			if !slices.Contains(merged, id) {
				merged = append(merged, id)
			}
		}
		ids = merged
	}

	return View{
		IDs:         ids,
		Page:        page.Meta.Page,
		Total:       page.Meta.Total,
		HasNextPage: page.Meta.HasNextPage,
		NextCursor:  page.Meta.NextCursor,
	}
}

func prepend(view View, id string) View {
	ids := make([]string, 0, len(view.IDs)+1)
	ids = append(ids, id)
	for _, existing := range view.IDs {
		if existing != id {
			ids = append(ids, existing)
		}
	}

	view.IDs = ids
	view.Total++
	return view
}

func without(view View, id string) View {
	if !slices.Contains(view.IDs, id) {
		return view
	}

	view.IDs = slices.DeleteFunc(slices.Clone(view.IDs), func(existing string) bool { return existing == id })
	view.Total = max(0, view.Total-1)
	return view
}
