// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// Handler exposes the verification endpoints.
type Handler struct {
	verificationService *Service
}

// NewHandler constructs a verification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{verificationService: service}
}

// Routes returns a [chi.Router] for /verification.
//
// # Endpoints
//   - GET  /requirements, /verified-users
//   - GET  /status, /eligibility    (auth)
//   - POST /submit                  (auth)
//   - POST /review/{userID}         (moderator)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/requirements", handler.requirements)
	router.Get("/verified-users", handler.verifiedUsers)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/status", handler.status)
		r.Get("/eligibility", handler.eligibility)
		r.Post("/submit", handler.submit)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleModerator))
		r.Post("/review/{userID}", handler.review)
	})

	return router
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

func (handler *Handler) requirements(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.verificationService.Requirements())
}

func (handler *Handler) verifiedUsers(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.verificationService.VerifiedUsers(request.Context(), pagination.FromRequestWithLimit(request, VerifiedUsersLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.verificationService.Status(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

func (handler *Handler) eligibility(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	eligibility, err := handler.verificationService.CanSubmit(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, eligibility)
}

/*
POST /api/v1/verification/submit.

Response:
  - 201: Request (pending)
  - 400: VALIDATION_ERROR (requirements unmet)
  - 409: CONFLICT (pending or approved)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submitted, err := handler.verificationService.Submit(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submitted)
}

func (handler *Handler) review(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	reviewed, err := handler.verificationService.Review(request.Context(), reviewerID, requestutil.ID(request, "userID"), input.Approve, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviewed)
}
