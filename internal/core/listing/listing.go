// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
	"github.com/taibuivan/yomishelf/pkg/pagination"
)

// SnapshotSource is the read-only catalogue handle injected into listings.
type SnapshotSource interface {
	Snapshot(context context.Context) (*catalog.Snapshot, error)
}

// State is the persisted part of a [Listing].
type State struct {
	ID              string    `json:"id"`
	View            string    `json:"view"`
	Criterion       Criterion `json:"criterion"`
	PageIndex       int       `json:"page_index"`
	PageSize        int       `json:"page_size"`
	SnapshotVersion string    `json:"snapshot_version"`
}

// Page is the result of one render pass.
type Page struct {
	Criterion       Criterion
	SnapshotVersion string
	Index           int
	Size            int
	Total           int
	Items           OrderedView
}

// Count returns the number of pages of the rendered view.
func (page Page) Count() int {
	return pagination.PageCount(page.Total, page.Size)
}

// Meta returns the response metadata of the page.
func (page Page) Meta() pagination.Meta {
	return pagination.NewMeta(page.Index, page.Size, page.Total)
}

// # Listing

// Listing is one paginated view over the catalogue.
//
// # Page index contract
//
// The page index returns to 0 whenever the criterion changes or the snapshot
// version differs from the one the index was chosen against. An explicit
// [Listing.SelectPage] is always applied after that check.
//
// # Concurrency
//
// Listing is not safe for concurrent use. Each request owns its instance.
type Listing struct {
	source          SnapshotSource
	sorter          Sorter
	id              string
	view            string
	criterion       Criterion
	paginator       *pagination.Paginator
	snapshotVersion string
}

// New restores a listing from its persisted state.
func New(source SnapshotSource, sorter Sorter, state State) *Listing {
	criterion := state.Criterion
	if !criterion.IsValid() {
		criterion = ByRecency
	}

	paginator := pagination.NewPaginator(state.PageSize)
	paginator.OnPageSelected(state.PageIndex)

	return &Listing{
		source:          source,
		sorter:          sorter,
		id:              state.ID,
		view:            state.View,
		criterion:       criterion,
		paginator:       paginator,
		snapshotVersion: state.SnapshotVersion,
	}
}

// State returns the persisted form of the listing.
func (listing *Listing) State() State {
	return State{
		ID:              listing.id,
		View:            listing.view,
		Criterion:       listing.criterion,
		PageIndex:       listing.paginator.PageIndex(),
		PageSize:        listing.paginator.PageSize(),
		SnapshotVersion: listing.snapshotVersion,
	}
}

// Criterion returns the active criterion.
func (listing *Listing) Criterion() Criterion {
	return listing.criterion
}

// Render slices the current page out of the latest snapshot.
func (listing *Listing) Render(context context.Context) (Page, error) {
	snapshot, err := listing.source.Snapshot(context)
	if err != nil {
		return Page{}, err
	}

	listing.sync(snapshot)
	return listing.slice(snapshot), nil
}

/*
SelectPage applies a page-selection command and renders the selected page.

Description: The snapshot is read once; the reset check, the index update and
the slice all observe that same snapshot. The index is not bounds-checked: a
page past the end renders empty.
*/
func (listing *Listing) SelectPage(context context.Context, index int) (Page, error) {
	snapshot, err := listing.source.Snapshot(context)
	if err != nil {
		return Page{}, err
	}

	listing.sync(snapshot)
	listing.paginator.OnPageSelected(index)
	return listing.slice(snapshot), nil
}

// SetCriterion switches the ordering and rewinds to the first page when it
// actually changed.
func (listing *Listing) SetCriterion(context context.Context, criterion Criterion) (Page, error) {
	if criterion != listing.criterion {
		listing.criterion = criterion
		listing.paginator.Reset()
	}
	return listing.Render(context)
}

// sync rewinds the page index when the snapshot changed underneath it.
func (listing *Listing) sync(snapshot *catalog.Snapshot) {
	version := snapshot.Version()
	if listing.snapshotVersion != "" && listing.snapshotVersion != version {
		listing.paginator.Reset()
	}
	listing.snapshotVersion = version
}

// slice sorts the snapshot and cuts out the active page.
func (listing *Listing) slice(snapshot *catalog.Snapshot) Page {
	ordered := listing.sorter.Sort(snapshot, listing.criterion)

	return Page{
		Criterion:       listing.criterion,
		SnapshotVersion: snapshot.Version(),
		Index:           listing.paginator.PageIndex(),
		Size:            listing.paginator.PageSize(),
		Total:           len(ordered),
		Items:           pagination.PageItems(listing.paginator, ordered),
	}
}
