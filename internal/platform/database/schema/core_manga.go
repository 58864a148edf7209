package schema

// CoreMangaTable represents the 'core.manga' table
type CoreMangaTable struct {
	Table      string
	ID         string
	Title      string
	Image      string
	ViewCount  string
	Chapter    string
	LastUpdate string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// CoreManga is the schema definition for core.manga
var CoreManga = CoreMangaTable{
	Table:      "core.manga",
	ID:         "id",
	Title:      "title",
	Image:      "image",
	ViewCount:  "viewcount",
	Chapter:    "chapter",
	LastUpdate: "lastupdate",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

func (t CoreMangaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Image, t.ViewCount, t.Chapter, t.LastUpdate,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
