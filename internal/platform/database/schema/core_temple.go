// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTempleTable represents the 'core.temple' table
type CoreTempleTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	City        string
	State       string
	Country     string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreTemple is the schema definition for core.temple
var CoreTemple = CoreTempleTable{
	Table:       "core.temple",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	City:        "city",
	State:       "state",
	Country:     "country",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CoreTempleTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.City, t.State, t.Country,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
