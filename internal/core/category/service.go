package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tirtha/internal/core/sluggen"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/constants"
	"github.com/taibuivan/tirtha/internal/platform/dberr"
	"github.com/taibuivan/tirtha/internal/platform/validate"
	"github.com/taibuivan/tirtha/pkg/uuidv7"
)

const maxNameLen = 120

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, filter, limit, offset)
}

// GetCategory resolves by UUID or slug, same dispatch as the content shelf.
func (service *Service) GetCategory(context context.Context, identifier string) (*Category, error) {
	if uuidv7.IsValid(identifier) {
		return service.repo.GetCategory(context, identifier)
	}
	return service.repo.GetCategoryBySlug(context, identifier)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name)
	validator.MaxLen(FieldName, category.Name, maxNameLen)
	if err := validator.Err(); err != nil {
		return err
	}

	if category.ID == "" {
		category.ID = uuidv7.New()
	}

	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		slug, err := sluggen.Generate(context, service.repo, category.Name, "")
		if err != nil {
			return err
		}
		category.Slug = slug

		err = service.repo.CreateCategory(context, category)
		if err == nil {
			service.logger.Info("category_created",
				slog.String("category_id", category.ID),
				slog.String("slug", category.Slug),
			)
			return nil
		}

		if !dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "create_category")
		}
	}

	return apperr.Conflict("Could not allocate a unique slug, please retry")
}

func (service *Service) UpdateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name)
	validator.MaxLen(FieldName, category.Name, maxNameLen)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.UpdateCategory(context, category)
}

func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Info("category_removed", slog.String("category_id", id))
	return nil
}
