package temple

import "time"

// Temple represents the institution a work is associated with.
type Temple struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	Country     string     `json:"country,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated temple search.
type Filter struct {
	Query   string // ILIKE search against name and city
	Country string
}

const (
	FieldName    = "name"
	FieldCity    = "city"
	FieldState   = "state"
	FieldCountry = "country"
)
