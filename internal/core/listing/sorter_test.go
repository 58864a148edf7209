// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
)

/*
TestSort_Recency orders by last update, newest first.
*/
func TestSort_Recency(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Entry{
		{ID: "a", LastUpdate: day(2)},
		{ID: "b", LastUpdate: day(3)},
		{ID: "c", LastUpdate: day(1)},
	}, day(10))

	assert.Equal(t, []string{"b", "a", "c"}, Sort(snapshot, ByRecency).IDs())
}

/*
TestSort_Popularity orders by all-time and weekly views.
*/
func TestSort_Popularity(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Entry{
		{ID: "a", Views: 10, WeeklyViews: 1},
		{ID: "b", Views: 30, WeeklyViews: 2},
		{ID: "c", Views: 20, WeeklyViews: 3},
	}, day(10))

	assert.Equal(t, []string{"b", "c", "a"}, Sort(snapshot, ByPopularity).IDs())
	assert.Equal(t, []string{"c", "b", "a"}, Sort(snapshot, ByWeeklyPopularity).IDs())
}

/*
TestSort_StableTies keeps source order among equal keys.
*/
func TestSort_StableTies(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Entry{
		{ID: "first", Views: 5, LastUpdate: day(4)},
		{ID: "top", Views: 9, LastUpdate: day(9)},
		{ID: "second", Views: 5, LastUpdate: day(4)},
		{ID: "third", Views: 5, LastUpdate: day(4)},
	}, day(10))

	assert.Equal(t, []string{"top", "first", "second", "third"}, Sort(snapshot, ByPopularity).IDs())
	assert.Equal(t, []string{"top", "first", "second", "third"}, Sort(snapshot, ByRecency).IDs())
}

/*
TestSort_MissingTimestampSortsLast treats unknown updates as the earliest instant.
*/
func TestSort_MissingTimestampSortsLast(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Entry{
		{ID: "unknown"},
		{ID: "old", LastUpdate: time.Date(1999, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "new", LastUpdate: day(5)},
	}, day(10))

	assert.Equal(t, []string{"new", "old", "unknown"}, Sort(snapshot, ByRecency).IDs())
}

/*
TestSort_Permutation returns every entry exactly once without touching the snapshot.
*/
func TestSort_Permutation(t *testing.T) {
	entries := numberedEntries(25)
	snapshot := catalog.NewSnapshot(entries, day(10))
	before := snapshot.Entries()

	for _, criterion := range []Criterion{ByRecency, ByPopularity, ByWeeklyPopularity} {
		ids := Sort(snapshot, criterion).IDs()
		require.Len(t, ids, len(entries))

		sorted := slices.Clone(ids)
		slices.Sort(sorted)
		assert.Equal(t, len(sorted), len(slices.Compact(sorted)), "duplicate ids for %s", criterion)
	}

	assert.Equal(t, before, snapshot.Entries())
}

/*
TestSort_EmptyAndUnknown handles degenerate inputs without errors.
*/
func TestSort_EmptyAndUnknown(t *testing.T) {
	assert.Empty(t, Sort(catalog.NewSnapshot(nil, day(1)), ByRecency))
	assert.Empty(t, Sort(nil, ByPopularity))

	snapshot := catalog.NewSnapshot(numberedEntries(5), day(1))
	assert.Equal(t, Sort(snapshot, ByRecency).IDs(), Sort(snapshot, Criterion("alphabetical")).IDs())
}

/*
TestCriterion_IsValid recognises the three orderings.
*/
func TestCriterion_IsValid(t *testing.T) {
	for _, name := range Criteria() {
		assert.True(t, Criterion(name).IsValid(), name)
	}
	assert.False(t, Criterion("").IsValid())
	assert.False(t, Criterion("RECENCY").IsValid())
}

/*
TestMemoSorter reuses views per version and evicts on a new version.
*/
func TestMemoSorter(t *testing.T) {
	memo := NewMemoSorter()
	first := catalog.NewSnapshot(numberedEntries(3), day(1))

	a := memo.Sort(first, ByPopularity)
	b := memo.Sort(first, ByPopularity)
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0])
	assert.Equal(t, Sort(first, ByPopularity), a)

	second := catalog.NewSnapshot(numberedEntries(4), day(2))
	c := memo.Sort(second, ByPopularity)
	assert.Len(t, c, 4)

	d := memo.Sort(first, ByPopularity)
	assert.NotSame(t, &a[0], &d[0])
	assert.Equal(t, a, d)
}
