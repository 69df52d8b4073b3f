// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-social/internal/platform/request"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
)

// # Transport

// Handler serves /auth. Refresh tokens travel in JSON bodies, not cookies;
// the client keeps them in its persisted state.
type Handler struct {
	authService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes mounts register, login, refresh and logout publicly, and me and
// change-password behind [middleware.RequireAuth].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.With(middleware.RequireAuth).Get("/me", handler.me)
	router.With(middleware.RequireAuth).Post("/change-password", handler.changePassword)

	return router
}

type credentials struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// register answers 201 with a [LoginSession], or 409 DUPLICATE_ACCOUNT.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var body credentials
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput(body))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

// login accepts an email or a username in the email field.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body credentials
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required(FieldEmail, body.Email).Required(FieldPassword, body.Password).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), body.Email, body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

/*
refresh exchanges a refresh token for a new access token.

Response:
  - 200: {"accessToken": "..."}
  - 401: NO_REFRESH_TOKEN for an empty token, SESSION_EXPIRED for a revoked or
    expired one
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var body refreshBody
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), body.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"accessToken": accessToken})
}

// logout always answers 204; an empty or unknown token revokes nothing.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var body refreshBody
	_ = requestutil.DecodeJSON(request, &body)

	if err := handler.authService.Logout(request.Context(), body.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.Me(request.Context(), requestutil.ViewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// changePassword keeps existing sessions; only the hash changes.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	var body passwordChange
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.authService.ChangePassword(request.Context(), requestutil.ViewerID(request), body.CurrentPassword, body.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{FieldMessage: "Password changed successfully"})
}
