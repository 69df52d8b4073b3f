// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// Registration is the sign-up payload.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a session.
func (client *Client) Login(context context.Context, email, password string) (*auth.LoginSession, error) {
	request := postRequest("/auth/login", map[string]string{"email": email, "password": password})
	request.SkipRefresh, request.Anonymous = true, true
	return call[*auth.LoginSession](context, client, request)
}

// Register creates an account and signs it in.
func (client *Client) Register(context context.Context, registration Registration) (*auth.LoginSession, error) {
	request := postRequest("/auth/register", registration)
	request.SkipRefresh, request.Anonymous = true, true
	return call[*auth.LoginSession](context, client, request)
}

// Refresh returns a new access token. Failures are not notified; the gateway
// reports an expired session itself.
func (client *Client) Refresh(context context.Context, refreshToken string) (string, error) {
	request := postRequest("/auth/refresh", map[string]string{"refreshToken": refreshToken})
	request.SkipRefresh, request.Anonymous, request.Quiet = true, true, true

	response, err := call[refreshResponse](context, client, request)
	return response.AccessToken, err
}

// Logout revokes refreshToken on the server.
func (client *Client) Logout(context context.Context, refreshToken string) error {
	request := postRequest("/auth/logout", map[string]string{"refreshToken": refreshToken})
	request.SkipRefresh, request.Anonymous, request.Quiet = true, true, true
	return exec(context, client, request)
}

// Me returns the account behind the current access token.
func (client *Client) Me(context context.Context) (*auth.User, error) {
	return call[*auth.User](context, client, getRequest("/auth/me", nil))
}

// ChangePassword replaces the password of the current account.
func (client *Client) ChangePassword(context context.Context, currentPassword, newPassword string) error {
	return exec(context, client, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/change-password",
		Body:   map[string]string{"currentPassword": currentPassword, "newPassword": newPassword},
	})
}
