// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table         string
	ID            string
	ContentID     string
	ChapterNumber string
	Title         string
	Slug          string
	Description   string
	MediaURL      string
	DurationSecs  string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ID:            "id",
	ContentID:     "contentid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	Slug:          "slug",
	Description:   "description",
	MediaURL:      "mediaurl",
	DurationSecs:  "durationsecs",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.ContentID, t.ChapterNumber, t.Title, t.Slug, t.Description,
		t.MediaURL, t.DurationSecs, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
