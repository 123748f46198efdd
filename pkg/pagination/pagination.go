// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via the "skip" and
// "limit" query parameters and how continuation links are delivered in the API
// response envelope. Every list endpoint returns the total count of matching
// rows plus self-describing next/prev URLs so clients never compute offsets
// themselves.
package pagination

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// MinLimit is the lower bound for items per page.
	MinLimit = 1
)

// Boundary violations are rejected, never silently clamped. Handlers map
// these to a 400 VALIDATION_ERROR response.
var (
	// ErrInvalidSkip is returned when "skip" is negative or unparsable.
	ErrInvalidSkip = errors.New("pagination: skip must be a non-negative integer")

	// ErrInvalidLimit is returned when "limit" is outside [MinLimit, MaxLimit].
	ErrInvalidLimit = errors.New("pagination: limit must be between 1 and 100")
)

// Window holds the parsed skip and limit from a request's query string.
type Window struct {
	Skip  int
	Limit int
}

// FromRequest parses "skip" and "limit" query parameters from an HTTP request.
//
// # Strictness
//
// Missing parameters fall back to skip=0 / limit=[DefaultLimit]. Present but
// out-of-range values fail with [ErrInvalidSkip] or [ErrInvalidLimit] — the
// window contract is part of the API surface, so bad input is a client error
// rather than something to be quietly corrected.
func FromRequest(request *http.Request) (Window, error) {
	window := Window{Skip: 0, Limit: DefaultLimit}
	query := request.URL.Query()

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return Window{}, ErrInvalidSkip
		}
		window.Skip = skip
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < MinLimit || limit > MaxLimit {
			return Window{}, ErrInvalidLimit
		}
		window.Limit = limit
	}

	return window, nil
}

// Page is the pagination metadata included in API list responses.
//
// NextPage and PrevPage are full request URLs with only the "skip" parameter
// rewritten; every other query parameter of the original request is preserved
// so a continuation link always replays the same filters.
type Page struct {
	TotalCount int     `json:"total_count"`
	Limit      int     `json:"limit"`
	Skip       int     `json:"skip"`
	NextPage   *string `json:"next_page"`
	PrevPage   *string `json:"prev_page"`
}

// NewPage constructs pagination metadata for a response.
//
// # Continuation Rules
//
//   - NextPage exists iff skip+limit < total (skip becomes skip+limit).
//   - PrevPage exists iff skip > 0 (skip becomes max(0, skip-limit)).
func NewPage(requestURL *url.URL, window Window, total int) Page {
	page := Page{
		TotalCount: total,
		Limit:      window.Limit,
		Skip:       window.Skip,
	}

	if window.Skip+window.Limit < total {
		next := replaceSkip(requestURL, window.Skip+window.Limit)
		page.NextPage = &next
	}

	if window.Skip > 0 {
		prevSkip := window.Skip - window.Limit
		if prevSkip < 0 {
			prevSkip = 0
		}
		prev := replaceSkip(requestURL, prevSkip)
		page.PrevPage = &prev
	}

	return page
}

// replaceSkip returns the URL string with its "skip" query parameter rewritten.
func replaceSkip(requestURL *url.URL, skip int) string {
	rewritten := *requestURL
	query := rewritten.Query()
	query.Set("skip", strconv.Itoa(skip))
	rewritten.RawQuery = query.Encode()
	return rewritten.String()
}
