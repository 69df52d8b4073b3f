// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators mounted by the API router.

Order matters: [RequestID] runs first so [StructuredLogger] can tag every line,
and [Authenticate] must precede [RequireAuth] and [RequireRole].
*/
package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-social/internal/platform/respond"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
)

// # Authentication

// TokenVerifier checks a bearer access token. [sec.TokenService] implements it.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

/*
Authenticate resolves the bearer token into claims.

A request without an Authorization header continues anonymously; read
endpoints serve it without viewer-relative fields. A malformed or expired
token is rejected with 401 UNAUTHORIZED, which is the signal clients use to
refresh.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, constants.BearerScheme) || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClaims(request.Context(), claims)))
		})
	}
}

// # Authorization

// RequireAuth rejects anonymous requests with 401 NOT_AUTHENTICATED.
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(sec.RoleMember)(next)
}

// RequireRole admits callers whose role is at least role. Anonymous callers
// get 401, authenticated ones below the bar get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.Claims(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, apperr.NotAuthenticated("Authentication required"))
			case !sec.ParseRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}
