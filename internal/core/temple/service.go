package temple

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

const maxNameLen = 200

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

func (service *Service) ListTemples(context context.Context, filter Filter, limit, offset int) ([]*Temple, int, error) {
	return service.repo.ListTemples(context, filter, limit, offset)
}

// GetTemple resolves by UUID or slug, same dispatch as the content shelf.
func (service *Service) GetTemple(context context.Context, identifier string) (*Temple, error) {
	if uuidv7.IsValid(identifier) {
		return service.repo.GetTemple(context, identifier)
	}
	return service.repo.GetTempleBySlug(context, identifier)
}

func (service *Service) CreateTemple(context context.Context, temple *Temple) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, temple.Name)
	validator.MaxLen(FieldName, temple.Name, maxNameLen)
	if err := validator.Err(); err != nil {
		return err
	}

	if temple.ID == "" {
		temple.ID = uuidv7.New()
	}

	for attempt := 0; attempt < constants.OrdinalRetryBudget; attempt++ {
		slug, err := sluggen.Generate(context, service.repo, temple.Name, "")
		if err != nil {
			return err
		}
		temple.Slug = slug

		err = service.repo.CreateTemple(context, temple)
		if err == nil {
			service.logger.Info("temple_created",
				slog.String("temple_id", temple.ID),
				slog.String("slug", temple.Slug),
			)
			return nil
		}

		if !dberr.IsUniqueViolation(err) {
			return dberr.Wrap(err, "create_temple")
		}
	}

	return apperr.Conflict("Could not allocate a unique slug, please retry")
}

func (service *Service) UpdateTemple(context context.Context, temple *Temple) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, temple.Name)
	validator.MaxLen(FieldName, temple.Name, maxNameLen)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.UpdateTemple(context, temple)
}

func (service *Service) DeleteTemple(context context.Context, id string) error {
	if err := service.repo.DeleteTemple(context, id); err != nil {
		return err
	}

	service.logger.Info("temple_removed", slog.String("temple_id", id))
	return nil
}
