// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomishelf/internal/platform/validate"
	"github.com/taibuivan/yomishelf/pkg/uuid"
)

// maxFieldLength bounds the free-text columns of an entry.
const maxFieldLength = 255

// # Service Layer

// Service orchestrates catalogue reads and maintenance.
type Service struct {
	repository EntryRepository
	provider   *Provider
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository and snapshot provider.
func NewService(repository EntryRepository, provider *Provider, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		provider:   provider,
		logger:     logger,
	}
}

// Snapshot returns the current catalogue snapshot.
func (service *Service) Snapshot(context context.Context) (*Snapshot, error) {
	return service.provider.Snapshot(context)
}

/*
ListEntries returns every entry of the current snapshot in source order.

Parameters:
  - context: context.Context

Returns:
  - []Entry: The catalogue collection
  - error: Snapshot load failures
*/
func (service *Service) ListEntries(context context.Context) ([]Entry, error) {
	snapshot, err := service.provider.Snapshot(context)
	if err != nil {
		return nil, err
	}
	return snapshot.Entries(), nil
}

/*
GetEntry returns one entry.

Description: The snapshot answers first; entries written since the last load
are read from the repository.
*/
func (service *Service) GetEntry(context context.Context, id string) (*Entry, error) {
	snapshot, err := service.provider.Snapshot(context)
	if err != nil {
		return nil, err
	}

	if entry, ok := snapshot.Find(id); ok {
		return &entry, nil
	}
	return service.repository.FindByID(context, id)
}

/*
UpsertEntry validates and stores an entry, then invalidates cached snapshots.

Description: A missing ID is generated (UUIDv7) so freshly created
entries carry time-ordered identifiers.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpsertEntry(context context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New()
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entry.Title)
	validator.MaxLen(FieldTitle, entry.Title, maxFieldLength)
	validator.MaxLen(FieldID, entry.ID, maxFieldLength)
	validator.MaxLen(FieldImage, entry.Image, maxFieldLength)
	validator.NonNegative(FieldViews, entry.Views)
	validator.NonNegative(FieldChapter, int64(entry.Chapter))

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.Upsert(context, entry); err != nil {
		return err
	}
	service.provider.Invalidate(context)

	service.logger.Info("manga_upserted",
		slog.String("manga_id", entry.ID),
		slog.Int("chapter", entry.Chapter),
	)
	return nil
}

// DeleteEntry soft-deletes an entry and invalidates cached snapshots.
func (service *Service) DeleteEntry(context context.Context, id string) error {
	if err := service.repository.SoftDelete(context, id); err != nil {
		return err
	}
	service.provider.Invalidate(context)

	service.logger.Info("manga_deleted", slog.String("manga_id", id))
	return nil
}

/*
RecordView counts one read of an entry.

Description: Views do not invalidate the snapshot; rankings pick them up on
the next scheduled refresh.
*/
func (service *Service) RecordView(context context.Context, id string) error {
	return service.repository.RecordView(context, id, 1)
}
