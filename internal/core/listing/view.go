// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"maps"
	"slices"
)

// # Named Views

// View is a named listing configuration exposed to clients.
type View struct {
	Name      string
	Criterion Criterion
	Caption   Caption
}

// View names.
const (
	ViewLatest  = "latest"
	ViewTopAll  = "top-all"
	ViewTopWeek = "top-week"
)

var views = map[string]View{
	ViewLatest:  {Name: ViewLatest, Criterion: ByRecency, Caption: CaptionDaysAgo},
	ViewTopAll:  {Name: ViewTopAll, Criterion: ByPopularity, Caption: CaptionViews},
	ViewTopWeek: {Name: ViewTopWeek, Criterion: ByWeeklyPopularity, Caption: CaptionWeeklyViews},
}

// LookupView returns the view registered under name.
func LookupView(name string) (View, bool) {
	view, ok := views[name]
	return view, ok
}

// ViewNames returns the registered view names in lexical order.
func ViewNames() []string {
	return slices.Sorted(maps.Keys(views))
}

// captionFor returns the caption matching criterion, used when a listing
// switches away from its view's default ordering.
func captionFor(criterion Criterion) Caption {
	switch criterion {
	case ByPopularity:
		return CaptionViews
	case ByWeeklyPopularity:
		return CaptionWeeklyViews
	default:
		return CaptionDaysAgo
	}
}

// # Home Feed

// Section is one fixed-size block of the home feed.
type Section struct {
	Name      string
	Criterion Criterion
	Caption   Caption
	Limit     int
}

// homeSections is the home feed layout, top to bottom.
var homeSections = []Section{
	{Name: "new_chapters", Criterion: ByRecency, Caption: CaptionChapter, Limit: 12},
	{Name: "new_titles", Criterion: ByRecency, Caption: CaptionDaysAgo, Limit: 8},
	{Name: "top_week", Criterion: ByWeeklyPopularity, Caption: CaptionChapter, Limit: 3},
	{Name: "dont_miss", Criterion: ByPopularity, Caption: CaptionChapter, Limit: 6},
}
