// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNewSnapshot_Normalizes drops duplicate IDs and clamps counters.
*/
func TestNewSnapshot_Normalizes(t *testing.T) {
	snapshot := NewSnapshot([]Entry{
		{ID: "a", Title: "First", Views: -5, WeeklyViews: -1, Chapter: -3},
		{ID: "b", Title: "Second", Views: 10},
		{ID: "a", Title: "Shadowed", Views: 99},
	}, day(1))

	require.Equal(t, 2, snapshot.Len())

	first := snapshot.At(0)
	assert.Equal(t, "First", first.Title)
	assert.Zero(t, first.Views)
	assert.Zero(t, first.WeeklyViews)
	assert.Zero(t, first.Chapter)

	found, ok := snapshot.Find("b")
	assert.True(t, ok)
	assert.Equal(t, int64(10), found.Views)

	_, ok = snapshot.Find("missing")
	assert.False(t, ok)
	assert.Equal(t, day(1), snapshot.LoadedAt())
}

/*
TestSnapshot_Version tracks content and order, not load time or zone.
*/
func TestSnapshot_Version(t *testing.T) {
	entries := []Entry{
		{ID: "a", Title: "A", LastUpdate: day(2)},
		{ID: "b", Title: "B", LastUpdate: day(3)},
	}
	base := NewSnapshot(entries, day(1))

	assert.NotEmpty(t, base.Version())
	assert.Equal(t, base.Version(), NewSnapshot(entries, day(9)).Version())

	zoned := []Entry{
		{ID: "a", Title: "A", LastUpdate: day(2).In(time.FixedZone("ICT", 7*3600))},
		{ID: "b", Title: "B", LastUpdate: day(3).In(time.FixedZone("ICT", 7*3600))},
	}
	assert.Equal(t, base.Version(), NewSnapshot(zoned, day(1)).Version())

	reordered := []Entry{entries[1], entries[0]}
	assert.NotEqual(t, base.Version(), NewSnapshot(reordered, day(1)).Version())

	bumped := []Entry{entries[0], {ID: "b", Title: "B", LastUpdate: day(3), Views: 1}}
	assert.NotEqual(t, base.Version(), NewSnapshot(bumped, day(1)).Version())
}

/*
TestSnapshot_Immutable verifies callers cannot reach the backing slice.
*/
func TestSnapshot_Immutable(t *testing.T) {
	input := []Entry{{ID: "a", Title: "A"}}
	snapshot := NewSnapshot(input, day(1))

	input[0].Title = "mutated input"
	copied := snapshot.Entries()
	copied[0].Title = "mutated copy"

	assert.Equal(t, "A", snapshot.At(0).Title)
}

/*
TestSnapshot_NilSafe keeps accessors total on a nil snapshot.
*/
func TestSnapshot_NilSafe(t *testing.T) {
	var snapshot *Snapshot

	assert.Empty(t, snapshot.Version())
	assert.Zero(t, snapshot.Len())
	assert.NotNil(t, snapshot.Entries())
	assert.True(t, snapshot.LoadedAt().IsZero())

	_, ok := snapshot.Find("a")
	assert.False(t, ok)
}

/*
TestNewSnapshot_Empty produces a valid empty snapshot.
*/
func TestNewSnapshot_Empty(t *testing.T) {
	snapshot := NewSnapshot(nil, day(1))

	assert.Zero(t, snapshot.Len())
	assert.NotEmpty(t, snapshot.Version())
	assert.Empty(t, snapshot.Entries())
}
