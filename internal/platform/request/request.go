// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path, query, body and caller identity from an
// incoming request.
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
)

// DecodeJSON decodes the body into target, reporting any failure as
// [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the chi path parameter name.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Query returns the trimmed query parameter name.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
RequiredUserID returns the caller's account id.

Returns:
  - error: 401 NOT_AUTHENTICATED for anonymous requests
*/
func RequiredUserID(request *http.Request) (string, error) {
	id := ctxutil.ViewerID(request.Context())
	if id == "" {
		return "", apperr.NotAuthenticated("Authentication required")
	}
	return id, nil
}

// ViewerID returns the caller's account id, or "" when anonymous.
func ViewerID(request *http.Request) string {
	return ctxutil.ViewerID(request.Context())
}
