// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// Handler exposes the post endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] for /posts.
//
// # Endpoints
//   - GET    /feed, /explore, /search, /by-user/{userID}
//   - GET    /{id}, /{id}/stats
//   - POST   /            (auth)
//   - PATCH  /{id}        (auth, author only)
//   - DELETE /{id}        (auth, author only)
//   - POST   /{id}/like   (auth)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/feed", handler.feed)
	router.Get("/explore", handler.explore)
	router.Get("/search", handler.search)
	router.Get("/by-user/{userID}", handler.byUser)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/stats", handler.stats)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Post("/{id}/like", handler.toggleLike)
	})

	return router
}

type contentRequest struct {
	Content string `json:"content"`
}

// # Listing Endpoints

// feed serves GET /api/v1/posts/feed?page=&limit=.
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.Feed(request.Context(), requestutil.ViewerID(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// explore serves GET /api/v1/posts/explore?page=&limit=.
func (handler *Handler) explore(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.Explore(request.Context(), requestutil.ViewerID(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// search serves GET /api/v1/posts/search?q=&page=&limit=.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.Search(
		request.Context(),
		requestutil.ViewerID(request),
		requestutil.Query(request, FieldQuery),
		pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

func (handler *Handler) byUser(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.UserPosts(
		request.Context(),
		requestutil.ViewerID(request),
		requestutil.ID(request, "userID"),
		pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

// # Single Post Endpoints

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.postService.Get(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.postService.Stats(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
POST /api/v1/posts.

Request:
  - Body: {content}

Response:
  - 201: Post
  - 400: VALIDATION_ERROR (empty or longer than 280 characters)
  - 401: NOT_AUTHENTICATED
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.postService.Create(request.Context(), userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

// update serves PATCH /api/v1/posts/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.postService.Update(request.Context(), userID, requestutil.ID(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// delete serves DELETE /api/v1/posts/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// toggleLike serves POST /api/v1/posts/{id}/like.
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.ToggleLike(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}
