package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/middleware"
	requestutil "github.com/taibuivan/tirtha/internal/platform/request"
	"github.com/taibuivan/tirtha/internal/platform/respond"
	"github.com/taibuivan/tirtha/internal/platform/sec"
	"github.com/taibuivan/tirtha/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{identifier}", handler.getCategory)

	// Admin/Mod only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleModerator))

		adminRoute.Post("/", handler.createCategory)
		adminRoute.Patch("/{identifier}", handler.updateCategory)

		// Admin strict only
		adminRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{identifier}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	window, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError(err.Error()))
		return
	}

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, window.Limit, window.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if categories == nil {
		categories = []*Category{}
	}

	respond.Paginated(writer, categories, pagination.NewPage(request.URL, window, total))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	category, err := handler.service.GetCategory(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	existing, err := handler.service.GetCategory(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description

	if err := handler.service.UpdateCategory(request.Context(), existing); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, existing)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	existing, err := handler.service.GetCategory(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), existing.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
