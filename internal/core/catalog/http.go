// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomishelf/internal/platform/constants"
	"github.com/taibuivan/yomishelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomishelf/internal/platform/request"
	"github.com/taibuivan/yomishelf/internal/platform/respond"
	"github.com/taibuivan/yomishelf/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for the catalogue source collection.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving the /manga collection.
//
// # Routing Strategy
//
//   - Public: The raw collection and view recording.
//   - Restricted: Upsert requires [sec.RoleEditor], delete [sec.RoleAdmin].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEntries)
	router.Get("/{id}", handler.getEntry)
	router.Post("/{id}/views", handler.recordView)

	router.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.upsertEntry)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteEntry)

	return router
}

/*
GET /manga.

Description: Returns the whole catalogue collection in source order.

Response:
  - 200: []Entry
  - 503: Snapshot could not be loaded
*/
func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.ListEntries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// GET /manga/{id}.
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetEntry(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// upsertEntryRequest defines the inbound JSON schema for catalogue writes.
type upsertEntryRequest struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Image      string     `json:"image"`
	Views      int64      `json:"views"`
	Chapter    int        `json:"chapter"`
	LastUpdate *time.Time `json:"last_update"`
}

/*
POST /manga.

Description: Creates an entry, or replaces the metadata of the entry with the
same ID.

Request:
  - body: upsertEntryRequest

Response:
  - 200: Entry: Stored entry
  - 400: VALIDATION_ERROR
  - 401/403: Editor role required
*/
func (handler *Handler) upsertEntry(writer http.ResponseWriter, request *http.Request) {
	var input upsertEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := &Entry{
		ID:      input.ID,
		Title:   input.Title,
		Image:   input.Image,
		Views:   input.Views,
		Chapter: input.Chapter,
	}
	if input.LastUpdate != nil {
		entry.LastUpdate = *input.LastUpdate
	}

	if err := handler.service.UpsertEntry(request.Context(), entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// DELETE /manga/{id}.
func (handler *Handler) deleteEntry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteEntry(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// POST /manga/{id}/views.
func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.RecordView(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "View recorded"})
}
