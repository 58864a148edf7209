// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
)

// snapshotFlightKey collapses concurrent loads into one round-trip.
const snapshotFlightKey = "snapshot"

// snapshotLoadTimeout bounds a shared load, which outlives any single caller.
const snapshotLoadTimeout = 10 * time.Second

// # Snapshot Provider

// Provider supplies the current catalogue [Snapshot] to every listing.
//
// # Loading order
//
//  1. The in-process snapshot while it is younger than ttl.
//  2. The shared [SnapshotCache] (optional).
//  3. The [EntryRepository].
//
// A reload that yields the same content returns the previous *Snapshot so
// that memoized sort results keyed on the snapshot stay valid.
//
// Provider is safe for concurrent use.
type Provider struct {
	repository EntryRepository
	cache      SnapshotCache
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	current *Snapshot
	expires time.Time
}

// NewProvider constructs a [Provider]. cache may be nil.
func NewProvider(repository EntryRepository, cache SnapshotCache, ttl time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		repository: repository,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

/*
Snapshot returns the current catalogue snapshot.

Parameters:
  - context: context.Context

Returns:
  - *Snapshot: Never nil on success; a stale copy while the repository is down
  - error: SERVICE_UNAVAILABLE when no snapshot was ever loaded
*/
func (provider *Provider) Snapshot(context context.Context) (*Snapshot, error) {
	provider.mu.RLock()
	current, expires := provider.current, provider.expires
	provider.mu.RUnlock()

	if current != nil && provider.now().Before(expires) {
		return current, nil
	}

	snapshot, err := provider.flight(context, provider.load)
	if err != nil {
		if current != nil {
			provider.logger.Warn("snapshot_serving_stale",
				slog.String("version", current.Version()),
				slog.Any("error", err),
			)
			return current, nil
		}
		return nil, err
	}
	return snapshot, nil
}

// Refresh bypasses the in-process copy and the shared cache and reloads the
// snapshot from the repository.
func (provider *Provider) Refresh(context context.Context) (*Snapshot, error) {
	return provider.flight(context, provider.loadFromRepository)
}

// flight runs load once for every concurrent caller.
//
// The load runs detached from ctx so one cancelled request cannot fail the
// callers sharing it; ctx only bounds how long this caller waits.
func (provider *Provider) flight(ctx context.Context, load func(context.Context) (*Snapshot, error)) (*Snapshot, error) {
	results := provider.group.DoChan(snapshotFlightKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotLoadTimeout)
		defer cancel()
		return load(loadCtx)
	})

	select {
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops every cached copy after a catalogue write.
func (provider *Provider) Invalidate(context context.Context) {
	provider.mu.Lock()
	provider.expires = time.Time{}
	provider.mu.Unlock()

	if provider.cache == nil {
		return
	}
	if err := provider.cache.Delete(context); err != nil {
		provider.logger.Warn("snapshot_cache_delete_failed", slog.Any("error", err))
	}
}

// Run reloads the snapshot every interval until context is cancelled.
func (provider *Provider) Run(context context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := provider.Refresh(context); err != nil {
				provider.logger.Error("snapshot_refresh_failed", slog.Any("error", err))
			}
		case <-context.Done():
			return
		}
	}
}

// load tries the shared cache before falling back to the repository.
func (provider *Provider) load(context context.Context) (*Snapshot, error) {
	if provider.cache != nil {
		cached, err := provider.cache.Get(context)
		if err != nil {
			// Cache outages degrade to direct reads; they never fail a listing.
			provider.logger.Warn("snapshot_cache_get_failed", slog.Any("error", err))
		}
		if cached != nil {
			return provider.install(cached), nil
		}
	}

	return provider.loadFromRepository(context)
}

// loadFromRepository reads PostgreSQL and repopulates the shared cache.
func (provider *Provider) loadFromRepository(context context.Context) (*Snapshot, error) {
	entries, err := provider.repository.ListEntries(context)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Catalogue is temporarily unavailable", err)
	}

	snapshot := provider.install(NewSnapshot(entries, provider.now()))

	if provider.cache != nil {
		if err := provider.cache.Set(context, snapshot); err != nil {
			provider.logger.Warn("snapshot_cache_set_failed", slog.Any("error", err))
		}
	}

	return snapshot, nil
}

// install makes snapshot current, keeping the old pointer when the content
// did not change.
func (provider *Provider) install(snapshot *Snapshot) *Snapshot {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.current != nil && provider.current.Version() == snapshot.Version() {
		snapshot = provider.current
	} else {
		provider.logger.Info("snapshot_loaded",
			slog.String("version", snapshot.Version()),
			slog.Int("entries", snapshot.Len()),
		)
	}

	provider.current = snapshot
	provider.expires = provider.now().Add(provider.ttl)
	return snapshot
}
