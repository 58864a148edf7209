// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomishelf/internal/platform/validate"
	"github.com/taibuivan/yomishelf/pkg/pagination"
	"github.com/taibuivan/yomishelf/pkg/uuid"
)

// Field names for validation errors.
const (
	FieldID        = "id"
	FieldView      = "view"
	FieldPage      = "page"
	FieldIndex     = "index"
	FieldCriterion = "criterion"
)

// Result is one rendered listing page.
type Result struct {
	Listing *State          `json:"listing,omitempty"` // nil for stateless rankings
	Items   []Card          `json:"items"`
	Meta    pagination.Meta `json:"meta"`
}

// SectionResult is one rendered block of the home feed.
type SectionResult struct {
	Name  string `json:"name"`
	Items []Card `json:"items"`
}

// # Service Layer

// Service renders named views, listing sessions and the home feed.
type Service struct {
	source   SnapshotSource
	sorter   Sorter
	sessions SessionRepository
	renderer *Renderer
	pageSize int
	logger   *slog.Logger
}

// NewService constructs a new listing [Service].
//
// # Parameters
//   - source: Read-only catalogue snapshot handle.
//   - sorter: Usually a shared [MemoSorter].
//   - sessions: Storage for listing sessions.
//   - renderer: Card renderer.
//   - pageSize: Items per page; non-positive values use the default.
func NewService(source SnapshotSource, sorter Sorter, sessions SessionRepository, renderer *Renderer, pageSize int, logger *slog.Logger) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultLimit
	}

	return &Service{
		source:   source,
		sorter:   sorter,
		sessions: sessions,
		renderer: renderer,
		pageSize: pageSize,
		logger:   logger,
	}
}

// # Stateless Rankings

/*
Ranking renders one page of a named view without creating a session.

Parameters:
  - context: context.Context
  - viewName: string (latest, top-all, top-week)
  - pageIndex: int (0-based; past-the-end pages are empty)

Returns:
  - *Result: Cards and pagination metadata
  - error: Validation or snapshot load errors
*/
func (service *Service) Ranking(context context.Context, viewName string, pageIndex int) (*Result, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldView, viewName, ViewNames()...)
	validator.Custom(FieldPage, pageIndex < 0, "Page index cannot be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	view, _ := LookupView(viewName)
	listing := New(service.source, service.sorter, State{
		View:      view.Name,
		Criterion: view.Criterion,
		PageSize:  service.pageSize,
	})

	page, err := listing.SelectPage(context, pageIndex)
	if err != nil {
		return nil, err
	}

	return service.result(nil, page, view.Caption), nil
}

// # Listing Sessions

// CreateListing opens a listing session on the first page of a named view.
func (service *Service) CreateListing(context context.Context, viewName string) (*Result, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldView, viewName, ViewNames()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	view, _ := LookupView(viewName)
	listing := New(service.source, service.sorter, State{
		ID:        uuid.New(),
		View:      view.Name,
		Criterion: view.Criterion,
		PageSize:  service.pageSize,
	})

	page, err := listing.Render(context)
	if err != nil {
		return nil, err
	}

	result, err := service.persist(context, listing, page)
	if err != nil {
		return nil, err
	}

	service.logger.Info("listing_created",
		slog.String("listing_id", result.Listing.ID),
		slog.String("view", view.Name),
	)
	return result, nil
}

// GetListing re-renders the current page of a session.
func (service *Service) GetListing(context context.Context, id string) (*Result, error) {
	listing, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	page, err := listing.Render(context)
	if err != nil {
		return nil, err
	}

	return service.persist(context, listing, page)
}

/*
SelectPage applies a page-selection command to a session.

Description: Negative indices are rejected; indices past the last page are
stored and render an empty page.

Parameters:
  - context: context.Context
  - id: string (Listing UUID)
  - index: int (0-based page)

Returns:
  - *Result: The selected page
  - error: Validation, NOT_FOUND or storage errors
*/
func (service *Service) SelectPage(context context.Context, id string, index int) (*Result, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldIndex, index < 0, "Page index cannot be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	listing, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	page, err := listing.SelectPage(context, index)
	if err != nil {
		return nil, err
	}

	service.logger.Debug("listing_page_selected",
		slog.String("listing_id", id),
		slog.Int("page", page.Index),
		slog.Int("page_count", page.Count()),
	)

	return service.persist(context, listing, page)
}

// SwitchCriterion changes the ordering of a session and rewinds it to page 0.
func (service *Service) SwitchCriterion(context context.Context, id string, criterion Criterion) (*Result, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldCriterion, string(criterion), Criteria()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	listing, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	page, err := listing.SetCriterion(context, criterion)
	if err != nil {
		return nil, err
	}

	return service.persist(context, listing, page)
}

// DeleteListing discards a session.
func (service *Service) DeleteListing(context context.Context, id string) error {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.sessions.Delete(context, id)
}

// # Home Feed

// Home renders every home feed section from a single snapshot.
func (service *Service) Home(context context.Context) ([]SectionResult, error) {
	snapshot, err := service.source.Snapshot(context)
	if err != nil {
		return nil, err
	}

	results := make([]SectionResult, 0, len(homeSections))
	for _, section := range homeSections {
		ordered := service.sorter.Sort(snapshot, section.Criterion)
		head := pagination.PageItems(pagination.NewPaginator(section.Limit), ordered)

		results = append(results, SectionResult{
			Name:  section.Name,
			Items: service.renderer.Cards(head, section.Caption),
		})
	}

	return results, nil
}

// # Internal Helpers

// load restores a listing from the session store.
func (service *Service) load(context context.Context, id string) (*Listing, error) {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	state, err := service.sessions.Get(context, id)
	if err != nil {
		return nil, err
	}
	return New(service.source, service.sorter, state), nil
}

// persist saves the listing state and builds the response.
func (service *Service) persist(context context.Context, listing *Listing, page Page) (*Result, error) {
	state := listing.State()
	if err := service.sessions.Save(context, state); err != nil {
		return nil, err
	}
	return service.result(&state, page, service.captionOf(state)), nil
}

// captionOf picks the caption of the session's view, or of its criterion
// once the client switched away from the view's default ordering.
func (service *Service) captionOf(state State) Caption {
	if view, ok := LookupView(state.View); ok && view.Criterion == state.Criterion {
		return view.Caption
	}
	return captionFor(state.Criterion)
}

func (service *Service) result(state *State, page Page, caption Caption) *Result {
	return &Result{
		Listing: state,
		Items:   service.renderer.Cards(page.Items, caption),
		Meta:    page.Meta(),
	}
}
