// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Pages are 1-indexed. The cursor handed back to clients is the start offset
// of the next page, rendered as a decimal string.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/taibuivan/yomira-social/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps Page and Limit into their valid ranges, using fallbackLimit
// when Limit is unset or out of range.
func (p Params) Normalize(fallbackLimit int) Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = fallbackLimit
	}
	return p
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	Total       int     `json:"total"`
	TotalPages  int     `json:"totalPages"`
	HasNextPage bool    `json:"hasNextPage"`
	NextCursor  *string `json:"nextCursor"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit,
// and sets NextCursor to the next start offset while more items remain.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	meta := Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	end := Params{Page: page, Limit: limit}.Offset() + limit
	if end < total {
		cursor := strconv.Itoa(end)
		meta.HasNextPage = true
		meta.NextCursor = &cursor
	}

	return meta
}

// Slice cuts one page out of an already ordered collection.
//
// An out-of-range page yields an empty, non-nil slice with correct metadata.
func Slice[T any](items []T, params Params) ([]T, Meta) {
	start := params.Offset()
	if start > len(items) {
		start = len(items)
	}

	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return page, NewMeta(params.Page, params.Limit, len(items))
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	return FromRequestWithLimit(r, DefaultLimit)
}

// FromRequestWithLimit is [FromRequest] with an endpoint-specific default limit.
func FromRequestWithLimit(r *http.Request, defaultLimit int) Params {
	values := r.URL.Query()
	return Params{
		Page:  convert.ToIntD(values.Get("page"), DefaultPage),
		Limit: convert.ToIntD(values.Get("limit"), defaultLimit),
	}.Normalize(defaultLimit)
}
