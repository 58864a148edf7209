// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the manga catalogue entries consumed by every listing
and the snapshot they are read through.

Core Responsibility:

  - Entries: The listable metadata of one title (cover, counters, latest chapter).
  - Snapshots: An immutable, insertion-ordered view of the catalogue at one load.
  - Supply: Loading snapshots from PostgreSQL with a Redis cache in front.

Malformed entries are normalized on the way in (clamped counters, dropped
duplicate IDs) so that listings never have to reject anything.
*/
package catalog

import (
	"encoding/binary"
	"encoding/hex"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
)

// # Core Entities

// Entry is one listable title of the catalogue.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Image       string    `json:"image,omitempty"` // Storage key; empty means "use the fallback cover"
	Views       int64     `json:"views"`
	WeeklyViews int64     `json:"weekly_views"` // Views over the trailing 7 days
	Chapter     int       `json:"chapter"`      // Latest chapter number
	LastUpdate  time.Time `json:"last_update"`  // Zero value means unknown
}

// HasImage reports whether the entry carries its own cover image.
func (e Entry) HasImage() bool {
	return e.Image != ""
}

// normalize clamps counters into their valid ranges.
func (e Entry) normalize() Entry {
	if e.Views < 0 {
		e.Views = 0
	}
	if e.WeeklyViews < 0 {
		e.WeeklyViews = 0
	}
	if e.Chapter < 0 {
		e.Chapter = 0
	}
	return e
}

// # Snapshot

// Snapshot is the catalogue as it existed at one load.
//
// # Immutability
//
// A Snapshot is never modified after [NewSnapshot] returns, so a pointer to
// it can be shared freely between goroutines and listings.
type Snapshot struct {
	version  string
	loadedAt time.Time
	entries  []Entry
	index    map[string]int
}

// NewSnapshot builds a snapshot from entries in their source order.
//
// Entries are normalized; a repeated ID keeps its first occurrence.
func NewSnapshot(entries []Entry, loadedAt time.Time) *Snapshot {
	snapshot := &Snapshot{
		loadedAt: loadedAt,
		entries:  make([]Entry, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		if _, duplicate := snapshot.index[entry.ID]; duplicate {
			continue
		}
		snapshot.index[entry.ID] = len(snapshot.entries)
		snapshot.entries = append(snapshot.entries, entry.normalize())
	}

	snapshot.version = fingerprint(snapshot.entries)
	return snapshot
}

// Version identifies the snapshot content. Two snapshots holding the same
// entries in the same order share a version.
func (s *Snapshot) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}

// LoadedAt returns when the snapshot was read from its source.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// At returns the entry at position i in source order.
func (s *Snapshot) At(i int) Entry {
	return s.entries[i]
}

// Entries returns a copy of all entries in source order.
func (s *Snapshot) Entries() []Entry {
	if s == nil {
		return []Entry{}
	}
	return slices.Clone(s.entries)
}

// Find returns the entry with the given ID.
func (s *Snapshot) Find(id string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// fingerprint hashes every field that can influence ordering or display.
func fingerprint(entries []Entry) string {
	digest := xxhash.New()
	var scratch [8]byte

	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(scratch[:], uint64(v))
		_, _ = digest.Write(scratch[:])
	}
	writeString := func(v string) {
		writeInt(int64(len(v)))
		_, _ = digest.WriteString(v)
	}

	for _, entry := range entries {
		writeString(entry.ID)
		writeString(entry.Title)
		writeString(entry.Image)
		writeInt(entry.Views)
		writeInt(entry.WeeklyViews)
		writeInt(int64(entry.Chapter))
		if entry.LastUpdate.IsZero() {
			writeInt(0)
		} else {
			writeInt(entry.LastUpdate.UnixNano())
		}
	}

	binary.BigEndian.PutUint64(scratch[:], digest.Sum64())
	return hex.EncodeToString(scratch[:])
}

// # Field Identifiers

// Field names for validation errors.
const (
	FieldID      = "id"
	FieldTitle   = "title"
	FieldImage   = "image"
	FieldViews   = "views"
	FieldChapter = "chapter"
)
