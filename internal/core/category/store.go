package category

import "context"

// Repository defines the data access contract for categories.
// Reads are soft-delete aware; Create and UpdateSlug return raw errors so the
// service can classify slug collisions and retry.
type Repository interface {
	ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error)
	GetCategory(context context.Context, id string) (*Category, error)
	GetCategoryBySlug(context context.Context, slug string) (*Category, error)
	CreateCategory(context context.Context, category *Category) error
	UpdateCategory(context context.Context, category *Category) error
	DeleteCategory(context context.Context, id string) error
	SlugExists(context context.Context, slug string, excludeID string) (bool, error)
}
