// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
)

func fixedRenderer(locale string) *Renderer {
	return NewRenderer("https://cdn.example/", "/static/placeholder.png", locale).
		WithClock(func() time.Time { return day(10).Add(5 * time.Hour) })
}

/*
TestDaysSinceUpdate floors elapsed time and clamps odd inputs to 0.
*/
func TestDaysSinceUpdate(t *testing.T) {
	now := day(10).Add(5 * time.Hour)

	tests := []struct {
		name string
		last time.Time
		want int
	}{
		{"same day", day(10), 0},
		{"just under a day", now.Add(-23 * time.Hour), 0},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"nine days", day(1), 9},
		{"future", day(12), 0},
		{"missing", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysSinceUpdate(now, tt.last))
		})
	}
}

/*
TestPreviousChapters lists up to two lower chapters and never goes negative.
*/
func TestPreviousChapters(t *testing.T) {
	assert.Equal(t, []int{41, 40}, PreviousChapters(42))
	assert.Equal(t, []int{1, 0}, PreviousChapters(2))
	assert.Equal(t, []int{0}, PreviousChapters(1))
	assert.Equal(t, []int{}, PreviousChapters(0))
}

/*
TestRenderer_ImageURL substitutes the fallback for missing covers.
*/
func TestRenderer_ImageURL(t *testing.T) {
	renderer := fixedRenderer("vi")

	assert.Equal(t, "https://cdn.example/image/covers/a.webp", renderer.ImageURL(catalog.Entry{Image: "covers/a.webp"}))
	assert.Equal(t, "/static/placeholder.png", renderer.ImageURL(catalog.Entry{}))
}

/*
TestRenderer_Card derives every display field.
*/
func TestRenderer_Card(t *testing.T) {
	renderer := fixedRenderer("vi")
	entry := catalog.Entry{
		ID:          "m1",
		Title:       "Dungeon Meshi",
		Views:       321,
		WeeklyViews: 12,
		Chapter:     97,
		LastUpdate:  day(7),
	}

	card := renderer.Card(entry, CaptionDaysAgo)
	assert.Equal(t, "/mangas/m1", card.Href)
	assert.Equal(t, "dungeon-meshi", card.Slug)
	assert.Equal(t, "/static/placeholder.png", card.Image)
	assert.Equal(t, []int{96, 95}, card.PreviousChapters)
	assert.Equal(t, 3, card.DaysSinceUpdate)
	assert.Equal(t, "3 ngày trước", card.Caption)

	assert.Equal(t, "321 lượt đọc", renderer.Card(entry, CaptionViews).Caption)
	assert.Equal(t, "12 lượt đọc", renderer.Card(entry, CaptionWeeklyViews).Caption)
	assert.Equal(t, "Chap 97", renderer.Card(entry, CaptionChapter).Caption)
}

/*
TestRenderer_EnglishCaptions translates captions for the English locale.
*/
func TestRenderer_EnglishCaptions(t *testing.T) {
	renderer := fixedRenderer("en")
	entry := catalog.Entry{ID: "m1", Views: 5, Chapter: 3, LastUpdate: day(8)}

	assert.Equal(t, "5 views", renderer.Card(entry, CaptionViews).Caption)
	assert.Equal(t, "Chapter 3", renderer.Card(entry, CaptionChapter).Caption)
	assert.Equal(t, "2 days ago", renderer.Card(entry, CaptionDaysAgo).Caption)
}

/*
TestRenderer_MissingUpdateHasNoAgeCaption leaves the caption blank.
*/
func TestRenderer_MissingUpdateHasNoAgeCaption(t *testing.T) {
	card := fixedRenderer("vi").Card(catalog.Entry{ID: "m1"}, CaptionDaysAgo)

	assert.Zero(t, card.DaysSinceUpdate)
	assert.Empty(t, card.Caption)
}

/*
TestRenderer_Cards keeps page order and never returns nil.
*/
func TestRenderer_Cards(t *testing.T) {
	renderer := fixedRenderer("vi")

	assert.NotNil(t, renderer.Cards(nil, CaptionViews))
	assert.Empty(t, renderer.Cards(OrderedView{}, CaptionViews))

	view := OrderedView{
		{ID: "b", Entry: catalog.Entry{ID: "b"}},
		{ID: "a", Entry: catalog.Entry{ID: "a"}},
	}
	cards := renderer.Cards(view, CaptionChapter)
	assert.Equal(t, "b", cards[0].ID)
	assert.Equal(t, "a", cards[1].ID)
}

/*
TestViews registers the three named views.
*/
func TestViews(t *testing.T) {
	assert.Equal(t, []string{ViewLatest, ViewTopAll, ViewTopWeek}, ViewNames())

	view, ok := LookupView(ViewTopWeek)
	assert.True(t, ok)
	assert.Equal(t, ByWeeklyPopularity, view.Criterion)

	_, ok = LookupView("oldest")
	assert.False(t, ok)
}
