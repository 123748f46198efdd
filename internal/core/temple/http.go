package temple

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
	router.Get("/", handler.listTemples)
	router.Get("/{identifier}", handler.getTemple)

	// Admin/Mod only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleModerator))

		adminRoute.Post("/", handler.createTemple)
		adminRoute.Patch("/{identifier}", handler.updateTemple)

		// Admin strict only
		adminRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{identifier}", handler.deleteTemple)
	})
}

func (handler *Handler) listTemples(writer http.ResponseWriter, request *http.Request) {
	window, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError(err.Error()))
		return
	}

	filter := Filter{
		Query:   request.URL.Query().Get("q"),
		Country: request.URL.Query().Get("country"),
	}

	temples, total, err := handler.service.ListTemples(request.Context(), filter, window.Limit, window.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if temples == nil {
		temples = []*Temple{}
	}

	respond.Paginated(writer, temples, pagination.NewPage(request.URL, window, total))
}

func (handler *Handler) getTemple(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	temple, err := handler.service.GetTemple(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, temple)
}

func (handler *Handler) createTemple(writer http.ResponseWriter, request *http.Request) {
	var input Temple

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTemple(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTemple(writer http.ResponseWriter, request *http.Request) {
	existing, err := handler.service.GetTemple(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Temple
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.City = input.City
	existing.State = input.State
	existing.Country = input.Country

	if err := handler.service.UpdateTemple(request.Context(), existing); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, existing)
}

func (handler *Handler) deleteTemple(writer http.ResponseWriter, request *http.Request) {
	existing, err := handler.service.GetTemple(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTemple(request.Context(), existing.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
