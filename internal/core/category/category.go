package category

import "time"

// Category classifies works by scripture tradition (vedas, puranas, stotras...).
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated category search.
type Filter struct {
	Query string // ILIKE search against name
}

const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)
