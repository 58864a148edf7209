// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomishelf/internal/platform/constants"
	requestutil "github.com/taibuivan/yomishelf/internal/platform/request"
	"github.com/taibuivan/yomishelf/internal/platform/respond"
	"github.com/taibuivan/yomishelf/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for rankings, listing sessions and the home feed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new listing [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with every listing endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/home", handler.home)
	router.Get("/rankings/{view}", handler.ranking)

	router.Route("/listings", func(listings chi.Router) {
		listings.Post("/", handler.createListing)
		listings.Get("/{id}", handler.getListing)
		listings.Post("/{id}/page", handler.selectPage)
		listings.Put("/{id}/criterion", handler.switchCriterion)
		listings.Delete("/{id}", handler.deleteListing)
	})

	return router
}

/*
GET /api/v1/rankings/{view}.

Description: One page of a named view (latest, top-all, top-week).

Request:
  - view: string
  - page: int (0-based)

Response:
  - 200: []Card with pagination meta
  - 400: VALIDATION_ERROR: Unknown view or negative page
*/
func (handler *Handler) ranking(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	result, err := handler.service.Ranking(request.Context(), requestutil.Param(request, "view"), params.Page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, result.Meta)
}

// createListingRequest opens a session on a named view.
type createListingRequest struct {
	View string `json:"view"`
}

/*
POST /api/v1/listings.

Response:
  - 201: Result: Session state and its first page
  - 400: VALIDATION_ERROR: Unknown view
*/
func (handler *Handler) createListing(writer http.ResponseWriter, request *http.Request) {
	var input createListingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateListing(request.Context(), input.View)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// GET /api/v1/listings/{id}.
func (handler *Handler) getListing(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.GetListing(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// selectPageRequest carries the index emitted by the pagination control.
type selectPageRequest struct {
	Index int `json:"index"`
}

/*
POST /api/v1/listings/{id}/page.

Response:
  - 200: Result: The selected page (empty past the end)
  - 400: VALIDATION_ERROR: Negative index
  - 404: NOT_FOUND: Unknown or expired listing
*/
func (handler *Handler) selectPage(writer http.ResponseWriter, request *http.Request) {
	var input selectPageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SelectPage(request.Context(), requestutil.ID(request, "id"), input.Index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// switchCriterionRequest selects a new ordering.
type switchCriterionRequest struct {
	Criterion Criterion `json:"criterion"`
}

// PUT /api/v1/listings/{id}/criterion.
func (handler *Handler) switchCriterion(writer http.ResponseWriter, request *http.Request) {
	var input switchCriterionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SwitchCriterion(request.Context(), requestutil.ID(request, "id"), input.Criterion)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// DELETE /api/v1/listings/{id}.
func (handler *Handler) deleteListing(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteListing(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/home.
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	sections, err := handler.service.Home(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{constants.FieldSections: sections})
}
