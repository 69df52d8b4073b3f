// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// Handler implements the HTTP layer for user profiles.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// Read endpoints are public; relationship flags are filled in when a bearer
// token is present.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Discovery
	router.Get("/search", handler.search)
	router.Get("/recommended", handler.recommended)
	router.Get("/availability/username/{username}", handler.usernameAvailability)
	router.Get("/availability/email/{email}", handler.emailAvailability)

	// Profiles
	router.Get("/by-username/{username}", handler.getByUsername)
	router.Get("/{id}", handler.getProfile)
	router.Get("/{id}/stats", handler.getStats)

	// Account Management
	router.With(middleware.RequireAuth).Patch("/me", handler.updateMe)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/users/{id}.

Response:
  - 200: Profile
  - 404: NOT_FOUND
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.accountService.GetProfile(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// getByUsername serves GET /api/v1/users/by-username/{username}.
func (handler *Handler) getByUsername(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.accountService.GetProfileByUsername(request.Context(), requestutil.ViewerID(request), requestutil.ID(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// getStats serves GET /api/v1/users/{id}/stats.
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.accountService.GetStats(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: UpdateProfileInput (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: NOT_AUTHENTICATED
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Discovery Endpoints

/*
GET /api/v1/users/search?q=&page=&limit=.

Response:
  - 200: Paginated list of users
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.accountService.Search(request.Context(), requestutil.Query(request, FieldQuery), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

// recommended serves GET /api/v1/users/recommended.
func (handler *Handler) recommended(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.Recommended(request.Context(), requestutil.ViewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

func (handler *Handler) usernameAvailability(writer http.ResponseWriter, request *http.Request) {
	availability, err := handler.accountService.UsernameAvailability(request.Context(), requestutil.ID(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, availability)
}

func (handler *Handler) emailAvailability(writer http.ResponseWriter, request *http.Request) {
	availability, err := handler.accountService.EmailAvailability(request.Context(), requestutil.ID(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, availability)
}
