// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// day returns midnight UTC of 2026-01-n.
func day(n int) time.Time {
	return time.Date(2026, time.January, n, 0, 0, 0, 0, time.UTC)
}

// fakeRepository is an in-memory [EntryRepository].
type fakeRepository struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	lists   int
}

func (repository *fakeRepository) ListEntries(context.Context) ([]Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.lists++
	if repository.err != nil {
		return nil, repository.err
	}
	return slices.Clone(repository.entries), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, entry := range repository.entries {
		if entry.ID == id {
			return &entry, nil
		}
	}
	return nil, apperr.NotFound(resourceManga)
}

func (repository *fakeRepository) Upsert(_ context.Context, entry *Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i := range repository.entries {
		if repository.entries[i].ID == entry.ID {
			repository.entries[i] = *entry
			return nil
		}
	}
	repository.entries = append(repository.entries, *entry)
	return nil
}

func (repository *fakeRepository) SoftDelete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i := range repository.entries {
		if repository.entries[i].ID == id {
			repository.entries = slices.Delete(repository.entries, i, i+1)
			return nil
		}
	}
	return apperr.NotFound(resourceManga)
}

func (repository *fakeRepository) RecordView(_ context.Context, id string, delta int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i := range repository.entries {
		if repository.entries[i].ID == id {
			repository.entries[i].Views += delta
			repository.entries[i].WeeklyViews += delta
			return nil
		}
	}
	return apperr.NotFound(resourceManga)
}

func (repository *fakeRepository) listCount() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.lists
}

// fakeCache is an in-memory [SnapshotCache].
type fakeCache struct {
	snapshot *Snapshot
	getErr   error
	sets     int
	deletes  int
}

func (cache *fakeCache) Get(context.Context) (*Snapshot, error) {
	if cache.getErr != nil {
		return nil, cache.getErr
	}
	return cache.snapshot, nil
}

func (cache *fakeCache) Set(_ context.Context, snapshot *Snapshot) error {
	cache.sets++
	cache.snapshot = snapshot
	return nil
}

func (cache *fakeCache) Delete(context.Context) error {
	cache.deletes++
	cache.snapshot = nil
	return nil
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestProvider builds a provider on a controllable clock.
func newTestProvider(repository EntryRepository, cache SnapshotCache, ttl time.Duration) (*Provider, *clock) {
	c := &clock{now: day(10)}
	provider := NewProvider(repository, cache, ttl, testLogger)
	provider.now = c.Now
	return provider, c
}
