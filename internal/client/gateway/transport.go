// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"context"
	"net/http"

	"github.com/taibuivan/yomira-social/internal/platform/constants"
)

// authTransport adds the bearer header at send time, so a retried request
// picks up the refreshed token.
type authTransport struct {
	gateway *Gateway
	base    http.RoundTripper
}

type bearerKey struct{}

// withoutBearer marks ctx so the transport sends no Authorization header.
func withoutBearer(ctx context.Context) context.Context {
	return context.WithValue(ctx, bearerKey{}, false)
}

func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (transport *authTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	if send, ok := request.Context().Value(bearerKey{}).(bool); ok && !send {
		return transport.base.RoundTrip(request)
	}

	authenticator, _ := transport.gateway.collaborators()
	if authenticator == nil {
		return transport.base.RoundTrip(request)
	}

	token := authenticator.AccessToken()
	if token == "" {
		return transport.base.RoundTrip(request)
	}

	// RoundTrippers must not modify the caller's request.
	authenticated := request.Clone(request.Context())
	authenticated.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	return transport.base.RoundTrip(authenticated)
}
