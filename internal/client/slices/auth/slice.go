// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/state"
	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	identity "github.com/taibuivan/yomira-social/internal/users/auth"
)

// API is the part of the remote client the session slice calls.
type API interface {
	Login(context context.Context, email, password string) (*identity.LoginSession, error)
	Register(context context.Context, registration remote.Registration) (*identity.LoginSession, error)
	Refresh(context context.Context, refreshToken string) (string, error)
	Logout(context context.Context, refreshToken string) error
	ChangePassword(context context.Context, currentPassword, newPassword string) error
}

// Slice owns the session state.
type Slice struct {
	store   *state.Store[State, Event]
	api     API
	storage persist.Store
	logger  *slog.Logger
}

// New returns an anonymous [Slice]. Call [Slice.RestoreSession] to pick up a
// persisted session.
func New(api API, storage persist.Store, logger *slog.Logger) *Slice {
	return &Slice{
		store:   state.New(Initial(), Reduce),
		api:     api,
		storage: storage,
		logger:  logger,
	}
}

// State returns the current snapshot.
func (slice *Slice) State() State {
	return slice.store.Snapshot()
}

// Status returns the lifecycle position.
func (slice *Slice) Status() Status {
	return slice.store.Snapshot().Status
}

// Subscribe registers listener for every transition.
func (slice *Slice) Subscribe(listener state.Listener[State, Event]) {
	slice.store.Subscribe(listener)
}

// # Sign In

/*
Login authenticates with email and password and persists the session.

Returns:
  - *identity.User: The signed-in account
  - error: INVALID_CREDENTIALS, VALIDATION_ERROR, or transport errors
*/
func (slice *Slice) Login(context context.Context, email, password string) (*identity.User, error) {
	slice.store.Dispatch(Pending{Op: OpLogin})

	session, err := slice.api.Login(context, email, password)
	if err != nil {
		slice.store.Dispatch(Failed{Op: OpLogin, Message: state.Message(err, defaultMessages[OpLogin])})
		return nil, err
	}

	slice.signIn(context, session)
	slice.logger.Info("auth_logged_in", slog.String("user_id", session.User.ID))
	return session.User, nil
}

// Register creates an account and signs it in.
func (slice *Slice) Register(context context.Context, registration remote.Registration) (*identity.User, error) {
	slice.store.Dispatch(Pending{Op: OpRegister})

	session, err := slice.api.Register(context, registration)
	if err != nil {
		slice.store.Dispatch(Failed{Op: OpRegister, Message: state.Message(err, defaultMessages[OpRegister])})
		return nil, err
	}

	slice.signIn(context, session)
	slice.logger.Info("auth_registered", slog.String("user_id", session.User.ID))
	return session.User, nil
}

func (slice *Slice) signIn(context context.Context, session *identity.LoginSession) {
	slice.store.Dispatch(SignedIn{Session: *session})

	if err := slice.persistSession(context, session); err != nil {
		slice.logger.Warn("auth_persist_failed", slog.Any("error", err))
	}
}

func (slice *Slice) persistSession(context context.Context, session *identity.LoginSession) error {
	if err := slice.storage.Set(context, persist.KeyAccessToken, session.AccessToken); err != nil {
		return err
	}
	if err := slice.storage.Set(context, persist.KeyRefreshToken, session.RefreshToken); err != nil {
		return err
	}
	return persist.SetJSON(context, slice.storage, persist.KeyUser, session.User)
}

// # Session Maintenance

/*
Refresh replaces the access token using the held refresh token.

Without a refresh token it returns NO_REFRESH_TOKEN and changes nothing. Any
other failure ends the session.
*/
func (slice *Slice) Refresh(context context.Context) error {
	refreshToken := slice.store.Snapshot().RefreshToken
	if refreshToken == "" {
		return apperr.NoRefreshToken()
	}

	slice.store.Dispatch(Pending{Op: OpRefresh})

	accessToken, err := slice.api.Refresh(context, refreshToken)
	if err != nil {
		slice.store.Dispatch(Failed{Op: OpRefresh, Message: state.Message(err, defaultMessages[OpRefresh])})
		_ = slice.clearStorage(context)
		return err
	}

	slice.store.Dispatch(Refreshed{AccessToken: accessToken})
	if err := slice.storage.Set(context, persist.KeyAccessToken, accessToken); err != nil {
		slice.logger.Warn("auth_persist_failed", slog.Any("error", err))
	}

	slice.logger.Debug("auth_token_refreshed")
	return nil
}

/*
RestoreSession re-enters the authenticated state from persisted storage
without contacting the server.

Returns:
  - bool: false when nothing usable was persisted (slice stays anonymous)
*/
func (slice *Slice) RestoreSession(context context.Context) bool {
	accessToken, ok, err := slice.storage.Get(context, persist.KeyAccessToken)
	if err != nil || !ok || accessToken == "" {
		return false
	}

	var user identity.User
	found, err := persist.GetJSON(context, slice.storage, persist.KeyUser, &user)
	if err != nil || !found || user.ID == "" {
		if err != nil {
			slice.logger.Warn("auth_restore_corrupt", slog.Any("error", err))
		}
		return false
	}

	refreshToken, _, err := slice.storage.Get(context, persist.KeyRefreshToken)
	if err != nil {
		return false
	}

	slice.store.Dispatch(SignedIn{Session: identity.LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &user,
	}})
	return true
}

// Logout clears the session locally and in storage, then revokes the refresh
// token on the server on a best-effort basis. Calling it twice is harmless.
func (slice *Slice) Logout(context context.Context) error {
	refreshToken := slice.store.Snapshot().RefreshToken

	err := slice.forget(context)

	if refreshToken != "" {
		if revokeErr := slice.api.Logout(context, refreshToken); revokeErr != nil {
			slice.logger.Warn("auth_revoke_failed", slog.Any("error", revokeErr))
		}
	}

	slice.logger.Info("auth_logged_out")
	return err
}

// forget drops the session without contacting the server.
func (slice *Slice) forget(context context.Context) error {
	slice.store.Dispatch(SignedOut{})
	return slice.clearStorage(context)
}

func (slice *Slice) clearStorage(context context.Context) error {
	if err := slice.storage.Delete(context, persist.SessionKeys...); err != nil {
		slice.logger.Warn("auth_persist_failed", slog.Any("error", err))
		return err
	}
	return nil
}

// # Account

// ChangePassword replaces the password. Tokens are not rotated.
func (slice *Slice) ChangePassword(context context.Context, currentPassword, newPassword string) error {
	slice.store.Dispatch(Pending{Op: OpChangePassword})

	if err := slice.api.ChangePassword(context, currentPassword, newPassword); err != nil {
		slice.store.Dispatch(Failed{Op: OpChangePassword, Message: state.Message(err, defaultMessages[OpChangePassword])})
		return err
	}

	slice.store.Dispatch(PasswordChanged{})
	return nil
}

// UpdateUser replaces the cached account after a profile change and
// re-persists it.
func (slice *Slice) UpdateUser(context context.Context, user *identity.User) error {
	next := slice.store.Dispatch(UserUpdated{User: user})
	if next.User != user {
		return nil
	}
	return persist.SetJSON(context, slice.storage, persist.KeyUser, user)
}

// ClearError resets the error field.
func (slice *Slice) ClearError() {
	slice.store.Dispatch(ErrorCleared{})
}

// # Gateway Authenticator

// AccessToken returns the bearer token, or "".
func (slice *Slice) AccessToken() string {
	return slice.store.Snapshot().AccessToken
}

// CanRefresh reports whether a refresh token is held.
func (slice *Slice) CanRefresh() bool {
	return slice.store.Snapshot().RefreshToken != ""
}

// EndSession ends the session after an unrecoverable 401.
func (slice *Slice) EndSession(context context.Context) {
	_ = slice.forget(context)
}
