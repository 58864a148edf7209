// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// day returns midnight UTC of 2026-01-n.
func day(n int) time.Time {
	return time.Date(2026, time.January, n, 0, 0, 0, 0, time.UTC)
}

// fakeSource serves a swappable snapshot.
type fakeSource struct {
	mu       sync.Mutex
	snapshot *catalog.Snapshot
	err      error
	reads    int
}

func newFakeSource(entries []catalog.Entry) *fakeSource {
	return &fakeSource{snapshot: catalog.NewSnapshot(entries, day(1))}
}

func (source *fakeSource) Snapshot(context.Context) (*catalog.Snapshot, error) {
	source.mu.Lock()
	defer source.mu.Unlock()

	source.reads++
	if source.err != nil {
		return nil, source.err
	}
	return source.snapshot, nil
}

func (source *fakeSource) replace(entries []catalog.Entry) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.snapshot = catalog.NewSnapshot(entries, day(2))
}

// numberedEntries builds n entries m00..m(n-1); entry i was updated on day
// i+1 and has i views, so recency and popularity both list them newest first.
func numberedEntries(n int) []catalog.Entry {
	entries := make([]catalog.Entry, n)
	for i := range entries {
		entries[i] = catalog.Entry{
			ID:          fmt.Sprintf("m%02d", i),
			Title:       fmt.Sprintf("Manga %d", i),
			Views:       int64(i),
			WeeklyViews: int64(n - i),
			Chapter:     i,
			LastUpdate:  day(1).Add(time.Duration(i) * time.Hour),
		}
	}
	return entries
}
