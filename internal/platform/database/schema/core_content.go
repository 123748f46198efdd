// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes table and column identifiers used to build SQL.
//
// Queries are assembled with fmt.Sprintf against these constants, so a column
// rename is a one-file change and typos fail loudly at review time instead of
// silently at runtime.
package schema

// CoreContentTable represents the 'core.content' table
type CoreContentTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	Format      string
	Status      string
	Language    string
	AuthorID    string
	CategoryID  string
	TempleID    string
	FileURL     string
	FileSize    string
	ViewCount   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreContent is the schema definition for core.content
var CoreContent = CoreContentTable{
	Table:       "core.content",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	Format:      "format",
	Status:      "status",
	Language:    "language",
	AuthorID:    "authorid",
	CategoryID:  "categoryid",
	TempleID:    "templeid",
	FileURL:     "fileurl",
	FileSize:    "filesize",
	ViewCount:   "viewcount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CoreContentTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.Format, t.Status, t.Language,
		t.AuthorID, t.CategoryID, t.TempleID, t.FileURL, t.FileSize,
		t.ViewCount, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
