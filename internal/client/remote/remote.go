// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remote is the typed API client of the social backend.

Each method maps to one REST endpoint under /api/v1 and reuses the backend's
domain types for the wire shape. Every call goes through a [Doer], normally
the request gateway, which owns authentication and error reporting.
*/
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// Doer executes one gateway request.
type Doer interface {
	Do(context context.Context, request gateway.Request) (*gateway.Envelope, error)
}

// Client is the typed API client.
type Client struct {
	doer Doer
}

// New returns a [Client] over doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items []T
	Meta  pagination.Meta
}

// # Request Builders

func pageQuery(params pagination.Params) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	return query
}

func searchQuery(term string, params pagination.Params) url.Values {
	query := pageQuery(params)
	query.Set("q", term)
	return query
}

func path(format string, ids ...string) string {
	escaped := make([]any, len(ids))
	for index, id := range ids {
		escaped[index] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, escaped...)
}

func getRequest(path string, query url.Values) gateway.Request {
	return gateway.Request{Method: http.MethodGet, Path: path, Query: query}
}

func postRequest(path string, body any) gateway.Request {
	return gateway.Request{Method: http.MethodPost, Path: path, Body: body}
}

// # Decoding

// call performs request and decodes its data into T.
func call[T any](context context.Context, client *Client, request gateway.Request) (T, error) {
	var result T

	envelope, err := client.doer.Do(context, request)
	if err != nil {
		return result, err
	}

	if len(envelope.Data) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		return result, fmt.Errorf("remote_decode_failed: %s %s: %w", request.Method, request.Path, err)
	}

	return result, nil
}

// callPage performs a list request and keeps its pagination meta.
func callPage[T any](context context.Context, client *Client, request gateway.Request) (Page[T], error) {
	var page Page[T]

	envelope, err := client.doer.Do(context, request)
	if err != nil {
		return page, err
	}

	if err := json.Unmarshal(envelope.Data, &page.Items); err != nil {
		return page, fmt.Errorf("remote_decode_failed: %s %s: %w", request.Method, request.Path, err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if envelope.Meta != nil {
		page.Meta = *envelope.Meta
	}

	return page, nil
}

// exec performs request and discards the body.
func exec(context context.Context, client *Client, request gateway.Request) error {
	_, err := client.doer.Do(context, request)
	return err
}
