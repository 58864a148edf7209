// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing turns a catalogue snapshot into sorted, paginated views.

Core Responsibility:

  - Sorting: A stable total order over entries for one [Criterion].
  - Paging: A [Listing] owns the active page of one view and slices it.
  - Rendering: [Renderer] derives display cards (cover fallback, days since update).

Nothing in the sort or page path returns an error. Empty catalogues and pages
past the end render as empty lists.
*/
package listing

import (
	"cmp"
	"slices"
	"sync"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
)

// # Criteria

// Criterion selects the dimension a view is ordered by.
type Criterion string

const (
	// ByRecency orders by last update, most recent first.
	ByRecency Criterion = "recency"

	// ByPopularity orders by all-time views, most viewed first.
	ByPopularity Criterion = "popularity"

	// ByWeeklyPopularity orders by views over the trailing week.
	ByWeeklyPopularity Criterion = "weekly_popularity"
)

// IsValid reports whether c is a recognised [Criterion].
func (c Criterion) IsValid() bool {
	switch c {
	case ByRecency, ByPopularity, ByWeeklyPopularity:
		return true
	}
	return false
}

// Criteria lists every recognised criterion as strings, for validation messages.
func Criteria() []string {
	return []string{string(ByRecency), string(ByPopularity), string(ByWeeklyPopularity)}
}

// # Ordered Views

// Pair couples an entry with its identifier inside an [OrderedView].
type Pair struct {
	ID    string        `json:"id"`
	Entry catalog.Entry `json:"entry"`
}

// OrderedView is a snapshot ordered by one criterion.
type OrderedView []Pair

// IDs returns the identifiers of the view in order.
func (view OrderedView) IDs() []string {
	ids := make([]string, len(view))
	for i, pair := range view {
		ids[i] = pair.ID
	}
	return ids
}

// Sorter produces ordered views. Implementations must be pure: the same
// snapshot and criterion always yield the same order.
type Sorter interface {
	Sort(snapshot *catalog.Snapshot, criterion Criterion) OrderedView
}

// SorterFunc adapts a plain function to [Sorter].
type SorterFunc func(snapshot *catalog.Snapshot, criterion Criterion) OrderedView

// Sort calls f.
func (f SorterFunc) Sort(snapshot *catalog.Snapshot, criterion Criterion) OrderedView {
	return f(snapshot, criterion)
}

/*
Sort orders the snapshot by criterion.

Description: The sort is stable, so entries with equal keys keep their source
order. Missing timestamps are the zero time and therefore sort last under
[ByRecency]. An unknown criterion falls back to [ByRecency].

Returns:
  - OrderedView: A new slice; the snapshot is never modified
*/
func Sort(snapshot *catalog.Snapshot, criterion Criterion) OrderedView {
	view := make(OrderedView, snapshot.Len())
	for i := range view {
		entry := snapshot.At(i)
		view[i] = Pair{ID: entry.ID, Entry: entry}
	}

	slices.SortStableFunc(view, comparator(criterion))
	return view
}

// comparator returns a descending comparison for criterion.
func comparator(criterion Criterion) func(a, b Pair) int {
	switch criterion {
	case ByPopularity:
		return func(a, b Pair) int { return cmp.Compare(b.Entry.Views, a.Entry.Views) }
	case ByWeeklyPopularity:
		return func(a, b Pair) int { return cmp.Compare(b.Entry.WeeklyViews, a.Entry.WeeklyViews) }
	default:
		return func(a, b Pair) int { return b.Entry.LastUpdate.Compare(a.Entry.LastUpdate) }
	}
}

// # Memoization

type memoKey struct {
	version   string
	criterion Criterion
}

// MemoSorter caches [Sort] results for the latest snapshot version.
//
// Returned views are shared between callers and must be treated as read-only.
// MemoSorter is safe for concurrent use.
type MemoSorter struct {
	mu      sync.Mutex
	version string
	views   map[memoKey]OrderedView
}

// NewMemoSorter constructs an empty [MemoSorter].
func NewMemoSorter() *MemoSorter {
	return &MemoSorter{views: make(map[memoKey]OrderedView)}
}

// Sort returns the cached view for (snapshot version, criterion), computing
// it on first use. A new snapshot version evicts every older view.
func (memo *MemoSorter) Sort(snapshot *catalog.Snapshot, criterion Criterion) OrderedView {
	key := memoKey{version: snapshot.Version(), criterion: criterion}

	memo.mu.Lock()
	defer memo.mu.Unlock()

	if memo.version != key.version {
		clear(memo.views)
		memo.version = key.version
	}

	if view, ok := memo.views[key]; ok {
		return view
	}

	view := Sort(snapshot, criterion)
	memo.views[key] = view
	return view
}
