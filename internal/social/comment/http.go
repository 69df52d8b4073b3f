// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
)

// Handler exposes the comment endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for /comments.
//
// # Endpoints
//   - GET    /post/{postID}
//   - GET    /{id}
//   - POST   /            (auth)
//   - PATCH  /{id}        (auth, author only)
//   - DELETE /{id}        (auth, author only)
//   - POST   /{id}/like   (auth)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/post/{postID}", handler.listByPost)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Post("/{id}/like", handler.toggleLike)
	})

	return router
}

type updateRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) listByPost(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.commentService.ListByPost(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "postID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.commentService.Get(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
POST /api/v1/comments.

Request:
  - Body: {postId, content, parentId?}

Response:
  - 201: Comment
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND (post)
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), userID, requestutil.ID(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.ToggleLike(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}
