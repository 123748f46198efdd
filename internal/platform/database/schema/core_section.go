// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreSectionTable represents the 'core.section' table
type CoreSectionTable struct {
	Table        string
	ID           string
	ChapterID    string
	SectionOrder string
	Title        string
	Slug         string
	Body         string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// CoreSection is the schema definition for core.section
var CoreSection = CoreSectionTable{
	Table:        "core.section",
	ID:           "id",
	ChapterID:    "chapterid",
	SectionOrder: "sectionorder",
	Title:        "title",
	Slug:         "slug",
	Body:         "body",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

func (t CoreSectionTable) Columns() []string {
	return []string{
		t.ID, t.ChapterID, t.SectionOrder, t.Title, t.Slug, t.Body,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
