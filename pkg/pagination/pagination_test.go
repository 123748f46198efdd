// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tirtha/pkg/pagination"
)

/*
TestFromRequest verifies strict window parsing (reject, never clamp).
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantSkip  int
		wantLimit int
		wantErr   error
	}{
		{"defaults", "", 0, pagination.DefaultLimit, nil},
		{"explicit_window", "skip=20&limit=50", 20, 50, nil},
		{"limit_upper_bound", "limit=100", 0, 100, nil},
		{"limit_too_large", "limit=101", 0, 0, pagination.ErrInvalidLimit},
		{"limit_zero", "limit=0", 0, 0, pagination.ErrInvalidLimit},
		{"limit_not_a_number", "limit=ten", 0, 0, pagination.ErrInvalidLimit},
		{"skip_negative", "skip=-1", 0, 0, pagination.ErrInvalidSkip},
		{"skip_not_a_number", "skip=abc", 0, 0, pagination.ErrInvalidSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/content?"+tt.rawQuery, nil)
			window, err := pagination.FromRequest(request)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, window.Skip)
			assert.Equal(t, tt.wantLimit, window.Limit)
		})
	}
}

/*
TestNewPage_Continuation verifies presence rules and skip rewriting for the
next/prev links.
*/
func TestNewPage_Continuation(t *testing.T) {
	requestURL, err := url.Parse("https://api.tirtha.app/api/v1/content?status=published&limit=10&skip=10")
	require.NoError(t, err)

	page := pagination.NewPage(requestURL, pagination.Window{Skip: 10, Limit: 10}, 25)

	assert.Equal(t, 25, page.TotalCount)
	require.NotNil(t, page.NextPage)
	require.NotNil(t, page.PrevPage)

	next, err := url.Parse(*page.NextPage)
	require.NoError(t, err)
	assert.Equal(t, "20", next.Query().Get("skip"))
	// Filters must survive the rewrite.
	assert.Equal(t, "published", next.Query().Get("status"))
	assert.Equal(t, "10", next.Query().Get("limit"))

	prev, err := url.Parse(*page.PrevPage)
	require.NoError(t, err)
	assert.Equal(t, "0", prev.Query().Get("skip"))
}

/*
TestNewPage_Boundaries covers the first page, the exact final page, and the
prev underflow floor.
*/
func TestNewPage_Boundaries(t *testing.T) {
	base, _ := url.Parse("/api/v1/content?limit=10")

	t.Run("first_page_has_no_prev", func(t *testing.T) {
		page := pagination.NewPage(base, pagination.Window{Skip: 0, Limit: 10}, 25)
		assert.Nil(t, page.PrevPage)
		assert.NotNil(t, page.NextPage)
	})

	t.Run("final_partial_page_has_no_next", func(t *testing.T) {
		page := pagination.NewPage(base, pagination.Window{Skip: 20, Limit: 10}, 25)
		assert.Nil(t, page.NextPage)
		assert.NotNil(t, page.PrevPage)
	})

	t.Run("exact_final_page_has_no_next", func(t *testing.T) {
		page := pagination.NewPage(base, pagination.Window{Skip: 20, Limit: 10}, 30)
		assert.Nil(t, page.NextPage)
	})

	t.Run("prev_skip_floors_at_zero", func(t *testing.T) {
		page := pagination.NewPage(base, pagination.Window{Skip: 5, Limit: 10}, 25)
		require.NotNil(t, page.PrevPage)
		prev, _ := url.Parse(*page.PrevPage)
		assert.Equal(t, "0", prev.Query().Get("skip"))
	})

	t.Run("empty_result_has_no_links", func(t *testing.T) {
		page := pagination.NewPage(base, pagination.Window{Skip: 0, Limit: 10}, 0)
		assert.Nil(t, page.NextPage)
		assert.Nil(t, page.PrevPage)
	})
}

/*
TestNewPage_WalkVisitsEveryWindow follows next links from skip=0 and checks
that exactly ceil(total/limit) pages are produced before the chain ends.
*/
func TestNewPage_WalkVisitsEveryWindow(t *testing.T) {
	const total, limit = 23, 5

	current, _ := url.Parse("/api/v1/content?limit=5&skip=0")
	window := pagination.Window{Skip: 0, Limit: limit}
	pages := 0

	for {
		page := pagination.NewPage(current, window, total)
		pages++

		if page.NextPage == nil {
			break
		}

		next, err := url.Parse(*page.NextPage)
		require.NoError(t, err)

		nextWindow, err := pagination.FromRequest(httptest.NewRequest("GET", next.String(), nil))
		require.NoError(t, err)

		// Each hop advances by exactly one window.
		assert.Equal(t, window.Skip+limit, nextWindow.Skip)
		current, window = next, nextWindow
	}

	assert.Equal(t, 5, pages) // ceil(23/5)
	assert.Equal(t, 20, window.Skip)
}
