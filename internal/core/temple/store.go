package temple

import "context"

// Repository defines the data access contract for temples.
// Reads are soft-delete aware; CreateTemple returns raw errors so the service
// can classify slug collisions and retry.
type Repository interface {
	ListTemples(context context.Context, filter Filter, limit, offset int) ([]*Temple, int, error)
	GetTemple(context context.Context, id string) (*Temple, error)
	GetTempleBySlug(context context.Context, slug string) (*Temple, error)
	CreateTemple(context context.Context, temple *Temple) error
	UpdateTemple(context context.Context, temple *Temple) error
	DeleteTemple(context context.Context, id string) error
	SlugExists(context context.Context, slug string, excludeID string) (bool, error)
}
