// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
)

func newTestService(entries []Entry) (*Service, *fakeRepository) {
	repository := &fakeRepository{entries: entries}
	provider, _ := newTestProvider(repository, nil, time.Hour)
	return NewService(repository, provider, testLogger), repository
}

/*
TestService_UpsertEntry_Validation rejects malformed writes with field details.
*/
func TestService_UpsertEntry_Validation(t *testing.T) {
	service, _ := newTestService(nil)

	tests := []struct {
		name  string
		entry Entry
		field string
	}{
		{"missing title", Entry{Title: "  "}, FieldTitle},
		{"long title", Entry{Title: strings.Repeat("あ", 256)}, FieldTitle},
		{"negative views", Entry{Title: "Ok", Views: -1}, FieldViews},
		{"negative chapter", Entry{Title: "Ok", Chapter: -2}, FieldChapter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			appError := apperr.As(service.UpsertEntry(context.Background(), &entry))
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestService_UpsertEntry_GeneratesIDAndInvalidates makes new entries visible
on the next snapshot read.
*/
func TestService_UpsertEntry_GeneratesIDAndInvalidates(t *testing.T) {
	service, _ := newTestService(seedEntries())

	before, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	entry := &Entry{Title: "Gamma", Chapter: 4, LastUpdate: day(5)}
	require.NoError(t, service.UpsertEntry(context.Background(), entry))

	parsed, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	after, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, before.Version(), after.Version())

	_, found := after.Find(entry.ID)
	assert.True(t, found)
}

/*
TestService_GetEntry reads the snapshot first and the repository second.
*/
func TestService_GetEntry(t *testing.T) {
	service, repository := newTestService(seedEntries())

	entry, err := service.GetEntry(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", entry.Title)

	// Written behind the provider's back: only the repository knows it
	require.NoError(t, repository.Upsert(context.Background(), &Entry{ID: "late", Title: "Late"}))
	entry, err = service.GetEntry(context.Background(), "late")
	require.NoError(t, err)
	assert.Equal(t, "Late", entry.Title)

	_, err = service.GetEntry(context.Background(), "ghost")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestService_DeleteEntry removes the entry from the next snapshot.
*/
func TestService_DeleteEntry(t *testing.T) {
	service, _ := newTestService(seedEntries())

	require.NoError(t, service.DeleteEntry(context.Background(), "a"))

	entries, err := service.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)

	assert.Error(t, service.DeleteEntry(context.Background(), "a"))
}

/*
TestService_RecordView does not invalidate the current snapshot.
*/
func TestService_RecordView(t *testing.T) {
	service, repository := newTestService(seedEntries())

	before, err := service.Snapshot(context.Background())
	require.NoError(t, err)

	require.NoError(t, service.RecordView(context.Background(), "a"))

	after, err := service.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, before, after)

	stored, err := repository.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(6), stored.Views)
}
