// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP interface for the content hierarchy.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors
    (GET /content, GET /content/{identifier}, GET /content/{id}/toc).
  - Restricted (v1): Mutative endpoints requiring Author role or above;
    destructive and administrative endpoints require Moderator/Admin.

The handler translates between the web/JSON layer and the internal domain
[Service]. Pagination windows are parsed strictly: out-of-range skip/limit
values are rejected with 400, never clamped.
*/
package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/middleware"
	requestutil "github.com/taibuivan/tirtha/internal/platform/request"
	"github.com/taibuivan/tirtha/internal/platform/respond"
	"github.com/taibuivan/tirtha/internal/platform/sec"
	"github.com/taibuivan/tirtha/pkg/pagination"
	"github.com/taibuivan/tirtha/pkg/pointer"
)

// maxUploadBytes caps in-memory parsing of multipart uploads (64 MiB).
const maxUploadBytes = 64 << 20

// # Handler Implementation

// Handler implements the HTTP layer for the content hierarchy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches content, chapter and section endpoints to the root
// API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/content", handler.ListContent)
	api.Get("/content/{identifier}", handler.GetContent)
	api.Get("/content/{id}/toc", handler.GetTableOfContents)
	api.Get("/content/{contentID}/chapters", handler.ListChapters)
	api.Get("/chapters/{id}", handler.GetChapter)
	api.Get("/chapters/{chapterID}/sections", handler.ListSections)
	api.Get("/sections/{id}", handler.GetSection)

	// Author protected endpoints
	api.Group(func(author chi.Router) {
		author.Use(middleware.RequireRole(sec.RoleAuthor))
		author.Post("/content", handler.CreateContent)
		author.Patch("/content/{id}", handler.UpdateContent)
		author.Post("/content/{id}/file", handler.UploadFile)
		author.Post("/content/{contentID}/chapters", handler.CreateChapter)
		author.Patch("/chapters/{id}", handler.UpdateChapter)
		author.Delete("/chapters/{id}", handler.RemoveChapter)
		author.Post("/chapters/{chapterID}/sections", handler.CreateSection)
		author.Patch("/sections/{id}", handler.UpdateSection)
		author.Delete("/sections/{id}", handler.RemoveSection)
	})

	// Moderation endpoints
	api.Group(func(moderator chi.Router) {
		moderator.Use(middleware.RequireRole(sec.RoleModerator))
		moderator.Delete("/content/{id}", handler.RemoveContent)
	})

	// Admin endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/content/{id}/regenerate-slug", handler.RegenerateSlug)
	})
}

// parseWindow extracts a strict pagination window, mapping rejection to a
// field-level VALIDATION_ERROR.
func parseWindow(request *http.Request) (pagination.Window, error) {
	window, err := pagination.FromRequest(request)
	if err != nil {
		return pagination.Window{}, apperr.ValidationError(err.Error())
	}
	return window, nil
}

// viewerRole extracts the caller's role, empty for anonymous visitors.
func viewerRole(request *http.Request) sec.UserRole {
	if claims := requestutil.Claims(request); claims != nil {
		return sec.UserRole(claims.Role)
	}
	return ""
}

// # Content Discovery

/*
GET /api/v1/content.

Description: Returns a filtered, paginated shelf of works. Anonymous callers
see published works only.

Request:
  - skip: int (>= 0)
  - limit: int (1..100)
  - category_id, temple_id, language, status, format, author_id: equality filters
  - q: string (title/description substring)

Response:
  - 200: Paginated list with next_page/prev_page continuation URLs
  - 400: Invalid pagination window or filter
*/
func (handler *Handler) ListContent(writer http.ResponseWriter, request *http.Request) {
	window, err := parseWindow(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := Filter{
		CategoryID: query.Get("category_id"),
		TempleID:   query.Get("temple_id"),
		Language:   query.Get("language"),
		Status:     Status(query.Get("status")),
		Format:     Format(query.Get("format")),
		AuthorID:   query.Get("author_id"),
		Query:      query.Get("q"),
	}

	works, total, err := handler.service.ListContent(request.Context(), filter, viewerRole(request), window.Limit, window.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if works == nil {
		works = []*Content{}
	}

	respond.Paginated(writer, works, pagination.NewPage(request.URL, window, total))
}

/*
GET /api/v1/content/{identifier}.

Description: Fetches one work by UUID or slug and bumps its view counter.

Response:
  - 200: Content
  - 404: Work missing or removed
*/
func (handler *Handler) GetContent(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	work, err := handler.service.GetContent(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, work)
}

/*
GET /api/v1/content/{id}/toc.

Description: Returns the work with its full ordered chapter/section tree.

Response:
  - 200: TableOfContents
  - 404: Work missing or removed
*/
func (handler *Handler) GetTableOfContents(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	toc, err := handler.service.TableOfContents(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toc)
}

// # Content Management

// contentRequest defines the inbound JSON schema for creates.
// Slug, ordinals and counters are never accepted from callers.
type contentRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Format      string  `json:"format"`
	Status      string  `json:"status"`
	Language    string  `json:"language"`
	CategoryID  *string `json:"category_id"`
	TempleID    *string `json:"temple_id"`
}

// contentUpdateRequest is the PATCH schema: every field is optional and an
// absent field leaves the stored value untouched.
type contentUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Language    *string `json:"language"`
	CategoryID  *string `json:"category_id"`
	TempleID    *string `json:"temple_id"`
}

/*
POST /api/v1/content.

Description: Creates a new work owned by the calling author. The slug is
derived from the title server-side.

Response:
  - 201: Content: Created work with its assigned slug
  - 400: Invalid payload
  - 401/403: Authentication or role failure
*/
func (handler *Handler) CreateContent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work := &Content{
		Title:       input.Title,
		Description: input.Description,
		Format:      Format(input.Format),
		Status:      Status(input.Status),
		Language:    input.Language,
		AuthorID:    userID,
		CategoryID:  input.CategoryID,
		TempleID:    input.TempleID,
	}

	if err := handler.service.CreateContent(request.Context(), work); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, work)
}

/*
PATCH /api/v1/content/{id}.

Description: Updates mutable metadata. Only fields present in the payload are
applied; the slug and format stay fixed. The load goes through the edit
lookup so a PATCH does not count as a view.

Response:
  - 200: Content: Updated work
  - 400: Invalid payload
  - 404: Work missing or removed
*/
func (handler *Handler) UpdateContent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	existing, err := handler.service.GetContentForEdit(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing.Title = pointer.Fallback(input.Title, existing.Title)
	existing.Description = pointer.Fallback(input.Description, existing.Description)
	existing.Language = pointer.Fallback(input.Language, existing.Language)
	if input.Status != nil {
		existing.Status = Status(*input.Status)
	}
	if input.CategoryID != nil {
		existing.CategoryID = input.CategoryID
	}
	if input.TempleID != nil {
		existing.TempleID = input.TempleID
	}

	if err := handler.service.UpdateContent(request.Context(), existing); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, existing)
}

/*
DELETE /api/v1/content/{id}.

Description: Soft-removes a work. Its slug becomes reclaimable.

Response:
  - 204: Removed
  - 404: Work missing or already removed
*/
func (handler *Handler) RemoveContent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.RemoveContent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/content/{id}/regenerate-slug.

Description: Re-derives the slug from the current title. Published URLs
pointing at the old slug will break; hence admin-only.

Response:
  - 200: {slug}: The new slug
  - 404: Work missing or removed
  - 409: Could not allocate a unique slug
*/
func (handler *Handler) RegenerateSlug(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	slug, err := handler.service.RegenerateSlug(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldSlug: slug})
}

/*
POST /api/v1/content/{id}/file.

Description: Uploads the work's binary payload (multipart field "file") to
object storage and records the returned URL and size.

Response:
  - 200: {file_url}: Stored location
  - 400: Missing or unreadable multipart payload
  - 404: Work missing or removed
  - 422: Text-format works do not carry files
*/
func (handler *Handler) UploadFile(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := request.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart payload"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing 'file' form field"))
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileURL, err := handler.service.AttachFile(request.Context(), id, header.Filename, file, header.Size, contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldFileURL: fileURL})
}
