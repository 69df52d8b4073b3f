// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth is the client-side session slice.

# Lifecycle

	anonymous -> authenticating -> authenticated -> refreshing -> authenticated
	                                                           \-> anonymous

A failed login keeps the slice anonymous. A failed refresh ends the session.
The slice is also the request gateway's [gateway.Authenticator].
*/
package auth

import (
	identity "github.com/taibuivan/yomira-social/internal/users/auth"
)

// # State

// Status is the position in the session lifecycle.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusRefreshing     Status = "refreshing"
)

// State is the session slice.
type State struct {
	User         *identity.User `json:"user"`
	AccessToken  string         `json:"accessToken,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	Status       Status         `json:"status"`
	IsLoading    bool           `json:"isLoading"`
	Error        string         `json:"error,omitempty"`
}

// Initial is the anonymous state.
func Initial() State {
	return State{Status: StatusAnonymous}
}

// IsAuthenticated reports whether a session is held, including while it is
// being refreshed.
func (state State) IsAuthenticated() bool {
	return state.Status == StatusAuthenticated || state.Status == StatusRefreshing
}

// # Events

// Op names the asynchronous operation an event belongs to.
type Op string

const (
	OpLogin          Op = "login"
	OpRegister       Op = "register"
	OpRefresh        Op = "refresh"
	OpChangePassword Op = "changePassword"
)

// defaultMessages are used when a failure carries no message.
var defaultMessages = map[Op]string{
	OpLogin:          "Login failed",
	OpRegister:       "Registration failed",
	OpRefresh:        "Token refresh failed",
	OpChangePassword: "Password change failed",
}

// Event is anything [Reduce] accepts.
type Event interface{ authEvent() }

type (
	Pending struct{ Op Op }

	// SignedIn installs a session from login, registration or restore.
	SignedIn struct{ Session identity.LoginSession }

	Refreshed struct{ AccessToken string }

	Failed struct {
		Op      Op
		Message string
	}

	PasswordChanged struct{}

	SignedOut struct{}

	// UserUpdated replaces the cached account when the ids match.
	UserUpdated struct{ User *identity.User }

	ErrorCleared struct{}
)

func (Pending) authEvent()         {}
func (SignedIn) authEvent()        {}
func (Refreshed) authEvent()       {}
func (Failed) authEvent()          {}
func (PasswordChanged) authEvent() {}
func (SignedOut) authEvent()       {}
func (UserUpdated) authEvent()     {}
func (ErrorCleared) authEvent()    {}

// # Reducer

// Reduce returns the state after event. It never modifies current.
func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		next.Error = ""
		switch event.Op {
		case OpLogin, OpRegister:
			next.IsLoading = true
			next.Status = StatusAuthenticating
		case OpRefresh:
			next.Status = StatusRefreshing
		case OpChangePassword:
			next.IsLoading = true
		}

	case SignedIn:
		next = State{
			User:         event.Session.User,
			AccessToken:  event.Session.AccessToken,
			RefreshToken: event.Session.RefreshToken,
			Status:       StatusAuthenticated,
		}

	case Refreshed:
		next.AccessToken = event.AccessToken
		next.Status = StatusAuthenticated

	case Failed:
		next.IsLoading = false
		next.Error = event.Message
		if next.Error == "" {
			next.Error = defaultMessages[event.Op]
		}

		switch event.Op {
		case OpLogin, OpRegister:
			if current.AccessToken == "" {
				next.Status = StatusAnonymous
			} else {
				next.Status = StatusAuthenticated
			}
		case OpRefresh:
			next = State{Status: StatusAnonymous, Error: next.Error}
		}

	case PasswordChanged:
		next.IsLoading = false
		next.Error = ""

	case SignedOut:
		next = Initial()

	case UserUpdated:
		if current.User != nil && event.User != nil && current.User.ID == event.User.ID {
			next.User = event.User
		}

	case ErrorCleared:
		next.Error = ""
	}

	return next
}
