// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalogue Data Access

// EntryRepository defines the data access contract for catalogue entries.
type EntryRepository interface {

	/*
		ListEntries returns every active entry in insertion order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Entry: All entries, oldest first, with weekly views aggregated
		  - error: Database retrieval failures
	*/
	ListEntries(context context.Context) ([]Entry, error)

	/*
		FindByID returns the entry with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Entry: The hydrated entry
		  - error: ErrNotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Entry, error)

	/*
		Upsert creates the entry or replaces the mutable fields of an existing one.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: Storage or constraint failures
	*/
	Upsert(context context.Context, entry *Entry) error

	/*
		SoftDelete marks an entry as deleted without physical row removal.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing
	*/
	SoftDelete(context context.Context, id string) error

	/*
		RecordView adds delta to the all-time and daily view counters.

		Parameters:
		  - context: context.Context
		  - id: string
		  - delta: int64

		Returns:
		  - error: ErrNotFound if missing
	*/
	RecordView(context context.Context, id string, delta int64) error
}

// # Snapshot Cache

// SnapshotCache stores the last loaded snapshot outside the process so that
// every replica serves the same catalogue version.
type SnapshotCache interface {
	Get(context context.Context) (*Snapshot, error)
	Set(context context.Context, snapshot *Snapshot) error
	Delete(context context.Context) error
}
