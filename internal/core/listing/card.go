// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/yomishelf/internal/core/catalog"
	"github.com/taibuivan/yomishelf/pkg/slice"
	"github.com/taibuivan/yomishelf/pkg/slug"
)

// # Captions

// Caption selects the short text shown over a card's cover.
type Caption string

const (
	CaptionViews       Caption = "views"
	CaptionWeeklyViews Caption = "weekly_views"
	CaptionChapter     Caption = "chapter"
	CaptionDaysAgo     Caption = "days_ago"
)

// Message keys double as the Vietnamese text.
const (
	keyViews   = "%d lượt đọc"
	keyChapter = "Chap %d"
	keyDaysAgo = "%d ngày trước"
)

func init() {
	for _, key := range []string{keyViews, keyChapter, keyDaysAgo} {
		_ = message.SetString(language.Vietnamese, key, key)
	}
	_ = message.SetString(language.English, keyViews, "%d views")
	_ = message.SetString(language.English, keyChapter, "Chapter %d")
	_ = message.SetString(language.English, keyDaysAgo, "%d days ago")
}

// previousChapterCount is how many chapters below the latest a card links to.
const previousChapterCount = 2

// dayLength is the unit of [DaysSinceUpdate].
const dayLength = 24 * time.Hour

// # Cards

// Card is the display-ready form of one catalogue entry.
type Card struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Image            string `json:"image"`
	Href             string `json:"href"`
	Views            int64  `json:"views"`
	WeeklyViews      int64  `json:"weekly_views"`
	Chapter          int    `json:"chapter"`
	PreviousChapters []int  `json:"previous_chapters"`
	DaysSinceUpdate  int    `json:"days_since_update"`
	Caption          string `json:"caption"`
}

// Renderer derives cards from entries.
type Renderer struct {
	imageBaseURL  string
	fallbackImage string
	printer       *message.Printer
	now           func() time.Time
}

// NewRenderer constructs a [Renderer].
//
// # Parameters
//   - imageBaseURL: Prefix of stored cover images (e.g. "https://cdn.example").
//   - fallbackImage: Cover used when an entry has none.
//   - locale: BCP-47 tag for captions; unparseable tags fall back to Vietnamese.
func NewRenderer(imageBaseURL, fallbackImage, locale string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}

	return &Renderer{
		imageBaseURL:  strings.TrimRight(imageBaseURL, "/"),
		fallbackImage: fallbackImage,
		printer:       message.NewPrinter(tag),
		now:           time.Now,
	}
}

// WithClock returns a copy of the renderer reading time from now.
func (renderer *Renderer) WithClock(now func() time.Time) *Renderer {
	clone := *renderer
	clone.now = now
	return &clone
}

// Cards renders every pair of a page with the same caption.
func (renderer *Renderer) Cards(items OrderedView, caption Caption) []Card {
	now := renderer.now()
	cards := slice.Map(items, func(pair Pair) Card {
		return renderer.card(pair.Entry, caption, now)
	})
	if cards == nil {
		return []Card{}
	}
	return cards
}

// Card renders one entry.
func (renderer *Renderer) Card(entry catalog.Entry, caption Caption) Card {
	return renderer.card(entry, caption, renderer.now())
}

func (renderer *Renderer) card(entry catalog.Entry, caption Caption, now time.Time) Card {
	card := Card{
		ID:               entry.ID,
		Title:            entry.Title,
		Slug:             slug.From(entry.Title),
		Image:            renderer.ImageURL(entry),
		Href:             "/mangas/" + entry.ID,
		Views:            entry.Views,
		WeeklyViews:      entry.WeeklyViews,
		Chapter:          entry.Chapter,
		PreviousChapters: PreviousChapters(entry.Chapter),
		DaysSinceUpdate:  DaysSinceUpdate(now, entry.LastUpdate),
	}

	switch caption {
	case CaptionViews:
		card.Caption = renderer.printer.Sprintf(keyViews, entry.Views)
	case CaptionWeeklyViews:
		card.Caption = renderer.printer.Sprintf(keyViews, entry.WeeklyViews)
	case CaptionChapter:
		card.Caption = renderer.printer.Sprintf(keyChapter, entry.Chapter)
	case CaptionDaysAgo:
		if !entry.LastUpdate.IsZero() {
			card.Caption = renderer.printer.Sprintf(keyDaysAgo, card.DaysSinceUpdate)
		}
	}

	return card
}

// ImageURL resolves the cover of entry, substituting the fallback image.
func (renderer *Renderer) ImageURL(entry catalog.Entry) string {
	if !entry.HasImage() {
		return renderer.fallbackImage
	}
	return renderer.imageBaseURL + "/image/" + entry.Image
}

// # Derived Fields

// DaysSinceUpdate returns the whole days elapsed between lastUpdate and now.
//
// Future timestamps (clock skew) and missing timestamps both yield 0.
func DaysSinceUpdate(now, lastUpdate time.Time) int {
	if lastUpdate.IsZero() {
		return 0
	}

	elapsed := now.Sub(lastUpdate)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / dayLength)
}

// PreviousChapters lists up to two chapter numbers below chapter, newest
// first, stopping at 0.
func PreviousChapters(chapter int) []int {
	previous := make([]int, 0, previousChapterCount)
	for step := 1; step <= previousChapterCount; step++ {
		if chapter-step < 0 {
			break
		}
		previous = append(previous, chapter-step)
	}
	return previous
}
