// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the page window used by every listing and the
// shared helpers for page-based list endpoints.
//
// # Overview
//
// A [Paginator] owns the active page index of one listing and slices any
// ordered sequence into the page it points at. Page indices are 0-based.
// Every operation is total: out-of-range pages produce empty slices instead
// of errors.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 12
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// # Page Window

// Paginator exposes a fixed-size window over an ordered sequence.
//
// # Concurrency
//
// Paginator is not safe for concurrent use. It has exactly one owner (the
// listing instance) which is also its only writer.
type Paginator struct {
	pageIndex int
	pageSize  int
}

// NewPaginator returns a Paginator positioned on the first page.
// A non-positive pageSize falls back to [DefaultLimit].
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultLimit
	}
	return &Paginator{pageSize: pageSize}
}

// PageIndex returns the active 0-based page index.
func (p *Paginator) PageIndex() int { return p.pageIndex }

// PageSize returns the fixed page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// OnPageSelected moves the window to newIndex.
//
// No bounds check is applied: the caller is trusted to emit indices in
// [0, PageCount). A page past the end simply renders empty.
func (p *Paginator) OnPageSelected(newIndex int) {
	p.pageIndex = newIndex
}

// Reset moves the window back to the first page.
func (p *Paginator) Reset() {
	p.pageIndex = 0
}

// PageCount returns ceil(total / pageSize), or 0 when total is 0.
func (p *Paginator) PageCount(total int) int {
	return PageCount(total, p.pageSize)
}

// Bounds returns the half-open [start, end) range of the active page,
// clipped to a sequence of the given length. start == end means empty.
func (p *Paginator) Bounds(length int) (start, end int) {
	if p.pageIndex < 0 || length <= 0 {
		return 0, 0
	}

	// Compare indices before multiplying so huge indices cannot wrap.
	if p.pageIndex > (length-1)/p.pageSize {
		return length, length
	}

	start = p.pageIndex * p.pageSize

	end = start + p.pageSize
	if end > length {
		end = length
	}
	return start, end
}

// PageItems returns the sub-sequence of ordered covered by the active page.
//
// The result is a fresh slice; callers may modify it freely. Two calls with
// the same state and input return equal slices.
func PageItems[T any](p *Paginator, ordered []T) []T {
	start, end := p.Bounds(len(ordered))
	page := make([]T, end-start)
	copy(page, ordered[start:end])
	return page
}

// PageCount returns ceil(total / pageSize). It returns 0 when total or
// pageSize is not positive.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// # Request Parameters

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: PageCount(total, limit),
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Unparseable values fall back to [DefaultPage] and [DefaultLimit]. A limit
// outside (0, [MaxLimit]] is replaced by [DefaultLimit]. Negative pages are
// returned as-is so handlers can reject them explicitly.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
