// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gateway is the single HTTP entry point of the state client.

Every remote call goes through [Gateway.Do], which:

  - Attaches "Authorization: Bearer <token>" while a session holds one.
  - On a 401, refreshes the session once and re-issues the call once.
    Concurrent refreshes collapse into a single request.
  - Terminates the session when no refresh is possible or the refresh fails.
  - Reports every other failure to the [Notifier] and returns it as an
    [*apperr.AppError] carrying the server's code.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// # User-Facing Messages

const (
	MessageLoginRequired  = "Please log in to continue."
	MessageSessionExpired = "Session expired. Please log in again."
	MessageUnexpected     = "An unexpected error occurred"
)

// refreshKey identifies the one shared refresh flight.
const refreshKey = "refresh"

// # Collaborators

// Authenticator is the session owner the gateway reads tokens from.
type Authenticator interface {
	// AccessToken returns the current bearer token, or "" when anonymous.
	AccessToken() string

	// CanRefresh reports whether a refresh token is held.
	CanRefresh() bool

	// Refresh obtains a new access token.
	Refresh(context context.Context) error

	// EndSession clears the session locally after an unrecoverable 401.
	EndSession(context context.Context)
}

// Notifier surfaces error messages to the user.
type Notifier interface {
	NotifyError(message string)
}

// # Request and Response

// Request describes one API call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// SkipRefresh returns a 401 as-is instead of refreshing. Set on the
	// login, register, refresh and logout calls.
	SkipRefresh bool

	// Anonymous sends the call without the bearer header. Credential calls
	// set it so a stale access token cannot get them rejected.
	Anonymous bool

	// Quiet suppresses the error notification.
	Quiet bool
}

// Envelope is a decoded success body.
type Envelope struct {
	Data json.RawMessage  `json:"data"`
	Meta *pagination.Meta `json:"meta,omitempty"`
}

// errorBody is the server's error envelope.
type errorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

// reply is a fully read HTTP response.
type reply struct {
	status  int
	payload []byte
}

// # Gateway

// Gateway wraps an [http.Client] with session handling.
type Gateway struct {
	baseURL   string
	client    *http.Client
	transport *http.Transport
	logger    *slog.Logger

	mu            sync.RWMutex
	authenticator Authenticator
	notifier      Notifier

	refreshes singleflight.Group
}

// New constructs a [Gateway] for baseURL with a per-exchange timeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Gateway {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	gateway := &Gateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport,
		logger:    logger,
	}
	gateway.client = &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{gateway: gateway, base: transport},
	}

	return gateway
}

// Bind attaches the session owner and the notifier. Either may be nil.
func (gateway *Gateway) Bind(authenticator Authenticator, notifier Notifier) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	gateway.authenticator = authenticator
	gateway.notifier = notifier
}

// Close releases idle connections.
func (gateway *Gateway) Close() {
	gateway.transport.CloseIdleConnections()
}

func (gateway *Gateway) collaborators() (Authenticator, Notifier) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()
	return gateway.authenticator, gateway.notifier
}

/*
Do performs request and decodes the success envelope.

Parameters:
  - context: context.Context
  - request: Request

Returns:
  - *Envelope: Data and optional pagination meta; empty for 204
  - error: *apperr.AppError (server code, SESSION_EXPIRED or NETWORK_ERROR)
*/
func (gateway *Gateway) Do(context context.Context, request Request) (*Envelope, error) {
	var body []byte
	if request.Body != nil {
		encoded, err := json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("gateway_encode_failed: %w", err)
		}
		body = encoded
	}

	response, err := gateway.send(context, request, body)
	if err != nil {
		return nil, gateway.fail(request, apperr.Network(err))
	}

	if response.status == http.StatusUnauthorized && !request.SkipRefresh {
		if err := gateway.renew(context); err != nil {
			return nil, err
		}

		// One retry only: a second 401 falls through to the generic path.
		response, err = gateway.send(context, request, body)
		if err != nil {
			return nil, gateway.fail(request, apperr.Network(err))
		}
	}

	if response.status >= http.StatusBadRequest {
		return nil, gateway.fail(request, decodeError(response))
	}

	envelope := &Envelope{}
	if len(bytes.TrimSpace(response.payload)) == 0 {
		return envelope, nil
	}
	if err := json.Unmarshal(response.payload, envelope); err != nil {
		return nil, gateway.fail(request, apperr.Network(fmt.Errorf("gateway_decode_failed: %w", err)))
	}

	return envelope, nil
}

func (gateway *Gateway) send(context context.Context, request Request, body []byte) (*reply, error) {
	target := gateway.baseURL + request.Path
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	if request.Anonymous {
		context = withoutBearer(context)
	}

	httpRequest, err := http.NewRequestWithContext(context, request.Method, target, reader)
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Accept", "application/json")
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	response, err := gateway.client.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return &reply{status: response.StatusCode, payload: payload}, nil
}

// # Session Renewal

// renew refreshes the session or terminates it.
func (gateway *Gateway) renew(context context.Context) error {
	authenticator, notifier := gateway.collaborators()

	if authenticator == nil || !authenticator.CanRefresh() {
		gateway.terminate(context, authenticator, notifier, MessageLoginRequired)
		return apperr.SessionExpired(MessageLoginRequired)
	}

	// The flight is shared, so one caller's cancellation must not fail it.
	flight := detach(context)
	_, err, shared := gateway.refreshes.Do(refreshKey, func() (any, error) {
		return nil, authenticator.Refresh(flight)
	})
	if err != nil {
		gateway.terminate(context, authenticator, notifier, MessageSessionExpired)
		expired := apperr.SessionExpired(MessageSessionExpired)
		expired.Cause = err
		return expired
	}

	gateway.logger.Debug("gateway_session_refreshed", slog.Bool("shared", shared))
	return nil
}

func (gateway *Gateway) terminate(context context.Context, authenticator Authenticator, notifier Notifier, message string) {
	if authenticator != nil {
		authenticator.EndSession(context)
	}
	if notifier != nil {
		notifier.NotifyError(message)
	}
	gateway.logger.Info("gateway_session_terminated", slog.String("reason", message))
}

// # Error Mapping

// fail notifies the user and returns err unchanged.
func (gateway *Gateway) fail(request Request, err *apperr.AppError) *apperr.AppError {
	gateway.logger.Debug("gateway_request_failed",
		slog.String("method", request.Method),
		slog.String("path", request.Path),
		slog.String("code", err.Code),
		slog.String("error", err.Message),
	)

	if !request.Quiet {
		if _, notifier := gateway.collaborators(); notifier != nil {
			notifier.NotifyError(err.Message)
		}
	}

	return err
}

/*
decodeError converts an error response into an [*apperr.AppError].

The message is the server's when present, otherwise the transport's status
line, otherwise [MessageUnexpected].
*/
func decodeError(response *reply) *apperr.AppError {
	var body errorBody
	_ = json.Unmarshal(response.payload, &body)

	message := body.Error
	switch {
	case message != "":
	case response.status > 0:
		message = fmt.Sprintf("Request failed with status code %d", response.status)
	default:
		message = MessageUnexpected
	}

	code := body.Code
	if code == "" {
		code = codeForStatus(response.status)
	}

	return &apperr.AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: response.status,
		Details:    body.Details,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperr.CodeValidation
	case http.StatusUnauthorized:
		return apperr.CodeUnauthorized
	case http.StatusForbidden:
		return apperr.CodeForbidden
	case http.StatusNotFound:
		return apperr.CodeNotFound
	case http.StatusConflict:
		return apperr.CodeConflict
	case http.StatusTooManyRequests:
		return apperr.CodeRateLimited
	case http.StatusServiceUnavailable:
		return apperr.CodeUnavailable
	default:
		return apperr.CodeInternal
	}
}
