package schema

// CoreMangaViewDailyTable represents the 'core.mangaviewdaily' table
type CoreMangaViewDailyTable struct {
	Table   string
	MangaID string
	Day     string
	Views   string
}

// CoreMangaViewDaily is the schema definition for core.mangaviewdaily
var CoreMangaViewDaily = CoreMangaViewDailyTable{
	Table:   "core.mangaviewdaily",
	MangaID: "mangaid",
	Day:     "day",
	Views:   "views",
}

func (t CoreMangaViewDailyTable) Columns() []string {
	return []string{t.MangaID, t.Day, t.Views}
}
