// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// Handler exposes the follow endpoints.
type Handler struct {
	followService *Service
}

// NewHandler constructs a follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{followService: service}
}

// Routes returns a [chi.Router] for /follows.
//
// # Endpoints
//   - GET    /{userID}/status, /{userID}/followers, /{userID}/following
//   - GET    /{userID}/mutual, /{userID}/counts
//   - POST   /{userID}          (auth) follow
//   - DELETE /{userID}          (auth) unfollow
//   - POST   /{userID}/toggle   (auth)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{userID}/status", handler.status)
	router.Get("/{userID}/followers", handler.followers)
	router.Get("/{userID}/following", handler.following)
	router.Get("/{userID}/mutual", handler.mutual)
	router.Get("/{userID}/counts", handler.counts)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{userID}", handler.write(handler.followService.Follow))
		r.Delete("/{userID}", handler.write(handler.followService.Unfollow))
		r.Post("/{userID}/toggle", handler.write(handler.followService.Toggle))
	})

	return router
}

// write adapts one of the edge-writing service calls to an endpoint.
func (handler *Handler) write(op func(context.Context, string, string) (Change, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		change, err := op(request.Context(), userID, requestutil.ID(request, "userID"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, change)
	}
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	status, err := handler.followService.Status(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

func (handler *Handler) followers(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.followService.Followers(request.Context(), requestutil.ID(request, "userID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.followService.Following(request.Context(), requestutil.ID(request, "userID"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

func (handler *Handler) mutual(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.followService.Mutual(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

func (handler *Handler) counts(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.followService.Counts(request.Context(), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, counts)
}
