// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-social/pkg/pagination"
)

/*
TestSlice covers the page window and cursor of a six-item collection.
*/
func TestSlice(t *testing.T) {
	items := []string{"6", "5", "4", "3", "2", "1"}

	tests := []struct {
		name       string
		params     pagination.Params
		want       []string
		hasNext    bool
		nextCursor string
	}{
		{"first page", pagination.Params{Page: 1, Limit: 4}, []string{"6", "5", "4", "3"}, true, "4"},
		{"last partial page", pagination.Params{Page: 2, Limit: 4}, []string{"2", "1"}, false, ""},
		{"exact fit", pagination.Params{Page: 1, Limit: 6}, items, false, ""},
		{"beyond end", pagination.Params{Page: 5, Limit: 4}, []string{}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, meta := pagination.Slice(items, tt.params)

			assert.Equal(t, tt.want, page)
			assert.Equal(t, 6, meta.Total)
			assert.Equal(t, tt.hasNext, meta.HasNextPage)
			if tt.hasNext {
				require.NotNil(t, meta.NextCursor)
				assert.Equal(t, tt.nextCursor, *meta.NextCursor)
			} else {
				assert.Nil(t, meta.NextCursor)
			}
		})
	}
}

/*
TestFromRequest verifies query parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 10}},
		{"?page=3&limit=5", pagination.Params{Page: 3, Limit: 5}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: 10}},
		{"?page=abc", pagination.Params{Page: 1, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/posts/feed"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}

	request := httptest.NewRequest("GET", "/verification/verified", nil)
	assert.Equal(t, 20, pagination.FromRequestWithLimit(request, 20).Limit)
}
