// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	requestutil "github.com/taibuivan/tirtha/internal/platform/request"
	"github.com/taibuivan/tirtha/internal/platform/respond"
	"github.com/taibuivan/tirtha/pkg/pagination"
	"github.com/taibuivan/tirtha/pkg/pointer"
)

// # Chapter Endpoints

// chapterRequest defines the inbound JSON schema for chapter writes.
// The chapter number and slug are assigned server-side and never accepted.
type chapterRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	MediaURL     string `json:"media_url"`
	DurationSecs *int   `json:"duration_secs"`
}

// chapterUpdateRequest is the PATCH schema: absent fields keep their stored
// value. Sending an explicit empty media_url still clears it (and trips the
// structural check on media-format works).
type chapterUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	MediaURL     *string `json:"media_url"`
	DurationSecs *int    `json:"duration_secs"`
}

/*
GET /api/v1/content/{contentID}/chapters.

Description: Returns a page of the work's chapters in reading order. Gaps
from removed chapters are preserved, never renumbered.

Response:
  - 200: Paginated chapter list
  - 400: Invalid pagination window
  - 404: Parent work missing or removed
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	window, err := parseWindow(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentID := requestutil.ID(request, "contentID")

	chapters, total, err := handler.service.ListChapters(request.Context(), contentID, window.Limit, window.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if chapters == nil {
		chapters = []*Chapter{}
	}

	respond.Paginated(writer, chapters, pagination.NewPage(request.URL, window, total))
}

/*
GET /api/v1/chapters/{id}.

Response:
  - 200: Chapter
  - 404: Chapter missing or removed
*/
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	chapter, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
POST /api/v1/content/{contentID}/chapters.

Description: Appends a chapter to the work. The chapter number is assigned
server-side; audio/video works must send a media URL, PDF works reject
chapters entirely.

Response:
  - 201: Chapter: Created chapter with its assigned number
  - 400: Invalid payload
  - 404: Parent work missing or removed
  - 422: Format forbids chapters or requires media
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	contentID := requestutil.ID(request, "contentID")

	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ContentID:    contentID,
		Title:        input.Title,
		Description:  input.Description,
		MediaURL:     input.MediaURL,
		DurationSecs: input.DurationSecs,
	}

	if err := handler.service.CreateChapter(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PATCH /api/v1/chapters/{id}.

Description: Updates chapter metadata. Only fields present in the payload are
applied; the chapter number stays fixed, and the media rule is re-checked
against the parent format.

Response:
  - 200: Chapter: Updated chapter
  - 400: Invalid payload
  - 404: Chapter missing or removed
  - 422: Media URL cleared on a media-format work
*/
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	existing, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input chapterUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing.Title = pointer.Fallback(input.Title, existing.Title)
	existing.Description = pointer.Fallback(input.Description, existing.Description)
	existing.MediaURL = pointer.Fallback(input.MediaURL, existing.MediaURL)
	if input.DurationSecs != nil {
		existing.DurationSecs = input.DurationSecs
	}

	if err := handler.service.UpdateChapter(request.Context(), existing); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, existing)
}

/*
DELETE /api/v1/chapters/{id}.

Description: Soft-removes a chapter and all its sections in one transaction.

Response:
  - 204: Removed
  - 404: Chapter missing or already removed
*/
func (handler *Handler) RemoveChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.RemoveChapter(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Section Endpoints

// sectionRequest defines the inbound JSON schema for section creates.
type sectionRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// sectionUpdateRequest is the PATCH schema: absent fields keep their stored
// value.
type sectionUpdateRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

/*
GET /api/v1/chapters/{chapterID}/sections.

Response:
  - 200: Paginated section list in reading order
  - 400: Invalid pagination window
  - 404: Parent chapter missing or removed
*/
func (handler *Handler) ListSections(writer http.ResponseWriter, request *http.Request) {
	window, err := parseWindow(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapterID := requestutil.ID(request, "chapterID")

	sections, total, err := handler.service.ListSections(request.Context(), chapterID, window.Limit, window.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sections == nil {
		sections = []*Section{}
	}

	respond.Paginated(writer, sections, pagination.NewPage(request.URL, window, total))
}

/*
GET /api/v1/sections/{id}.

Response:
  - 200: Section
  - 404: Section missing or removed
*/
func (handler *Handler) GetSection(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	section, err := handler.service.GetSection(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

/*
POST /api/v1/chapters/{chapterID}/sections.

Description: Appends a section to the chapter. Only text-format works own
sections; the first section of a chapter gets order 0.

Response:
  - 201: Section: Created section with its assigned order
  - 400: Invalid payload
  - 404: Parent chapter missing or removed
  - 422: Parent work is not text-format
*/
func (handler *Handler) CreateSection(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")

	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section := &Section{
		ChapterID: chapterID,
		Title:     input.Title,
		Body:      input.Body,
	}

	if err := handler.service.CreateSection(request.Context(), section); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, section)
}

/*
PATCH /api/v1/sections/{id}.

Description: Updates section fields. Only fields present in the payload are
applied; the section order stays fixed.

Response:
  - 200: Section: Updated section
  - 400: Invalid payload
  - 404: Section missing or removed
*/
func (handler *Handler) UpdateSection(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	existing, err := handler.service.GetSection(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input sectionUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing.Title = pointer.Fallback(input.Title, existing.Title)
	existing.Body = pointer.Fallback(input.Body, existing.Body)

	if err := handler.service.UpdateSection(request.Context(), existing); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, existing)
}

/*
DELETE /api/v1/sections/{id}.

Response:
  - 204: Removed
  - 404: Section missing or already removed
*/
func (handler *Handler) RemoveSection(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.RemoveSection(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
