// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tirtha/internal/core/content"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/internal/platform/sec"
	"github.com/taibuivan/tirtha/pkg/uuidv7"
)

// uniqueViolation fabricates the SQLSTATE 23505 error the live database
// raises when a partial unique index rejects an insert.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

// # In-Memory Fakes

// fakeContentRepo mimics the PostgreSQL content store, including the partial
// unique slug index over live rows.
type fakeContentRepo struct {
	works        map[string]*content.Content
	order        []string
	views        map[string]int64
	viewCountErr error

	// beforeCreate simulates a racer acting in the window between slug
	// derivation and insert. One-shot: cleared after it fires.
	beforeCreate func()
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		works: make(map[string]*content.Content),
		views: make(map[string]int64),
	}
}

func (repo *fakeContentRepo) live(id string) *content.Content {
	work, found := repo.works[id]
	if !found || work.DeletedAt != nil {
		return nil
	}
	return work
}

func (repo *fakeContentRepo) List(_ context.Context, filter content.Filter, limit, offset int) ([]*content.Content, int, error) {
	var matched []*content.Content
	for _, id := range repo.order {
		work := repo.live(id)
		if work == nil {
			continue
		}
		if filter.Status != "" && work.Status != filter.Status {
			continue
		}
		if filter.Format != "" && work.Format != filter.Format {
			continue
		}
		if filter.Language != "" && work.Language != filter.Language {
			continue
		}
		if filter.AuthorID != "" && work.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(work.Title), strings.ToLower(filter.Query)) {
			continue
		}
		matched = append(matched, work)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repo *fakeContentRepo) FindByID(_ context.Context, id string) (*content.Content, error) {
	if work := repo.live(id); work != nil {
		copied := *work
		return &copied, nil
	}
	return nil, apperr.NotFound("Content")
}

func (repo *fakeContentRepo) FindBySlug(_ context.Context, slug string) (*content.Content, error) {
	for _, id := range repo.order {
		if work := repo.live(id); work != nil && work.Slug == slug {
			copied := *work
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Content")
}

func (repo *fakeContentRepo) Create(_ context.Context, work *content.Content) error {
	if repo.beforeCreate != nil {
		hook := repo.beforeCreate
		repo.beforeCreate = nil
		hook()
	}

	for _, id := range repo.order {
		if existing := repo.live(id); existing != nil && existing.Slug == work.Slug {
			return uniqueViolation("uq_content_slug")
		}
	}

	copied := *work
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	repo.works[copied.ID] = &copied
	repo.order = append(repo.order, copied.ID)
	return nil
}

func (repo *fakeContentRepo) Update(_ context.Context, work *content.Content) error {
	existing := repo.live(work.ID)
	if existing == nil {
		return apperr.NotFound("Content")
	}
	existing.Title = work.Title
	existing.Description = work.Description
	existing.Status = work.Status
	existing.Language = work.Language
	existing.CategoryID = work.CategoryID
	existing.TempleID = work.TempleID
	existing.UpdatedAt = time.Now()
	return nil
}

func (repo *fakeContentRepo) UpdateSlug(_ context.Context, id string, slug string) error {
	existing := repo.live(id)
	if existing == nil {
		return apperr.NotFound("Content")
	}
	for _, otherID := range repo.order {
		if other := repo.live(otherID); other != nil && other.ID != id && other.Slug == slug {
			return uniqueViolation("uq_content_slug")
		}
	}
	existing.Slug = slug
	return nil
}

func (repo *fakeContentRepo) UpdateFile(_ context.Context, id string, fileURL string, fileSize int64) error {
	existing := repo.live(id)
	if existing == nil {
		return apperr.NotFound("Content")
	}
	existing.FileURL = fileURL
	existing.FileSize = fileSize
	return nil
}

func (repo *fakeContentRepo) SoftDelete(_ context.Context, id string) error {
	existing := repo.live(id)
	if existing == nil {
		return apperr.NotFound("Content")
	}
	now := time.Now()
	existing.DeletedAt = &now
	return nil
}

func (repo *fakeContentRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	for _, id := range repo.order {
		if work := repo.live(id); work != nil && work.Slug == slug && work.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeContentRepo) IncrementViewCount(_ context.Context, id string, delta int64) error {
	if repo.viewCountErr != nil {
		return repo.viewCountErr
	}
	repo.views[id] += delta
	return nil
}

// fakeChapterRepo mimics the chapter store with both partial unique indexes:
// (content_id, chapter_number) and slug, over live rows.
type fakeChapterRepo struct {
	chapters map[string]*content.Chapter
	order    []string
	sections *fakeSectionRepo

	beforeCreate func()
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{chapters: make(map[string]*content.Chapter)}
}

func (repo *fakeChapterRepo) live(id string) *content.Chapter {
	chapter, found := repo.chapters[id]
	if !found || chapter.DeletedAt != nil {
		return nil
	}
	return chapter
}

func (repo *fakeChapterRepo) liveByContent(contentID string) []*content.Chapter {
	var chapters []*content.Chapter
	for _, id := range repo.order {
		if chapter := repo.live(id); chapter != nil && chapter.ContentID == contentID {
			chapters = append(chapters, chapter)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters
}

func (repo *fakeChapterRepo) ListByContent(_ context.Context, contentID string, limit, offset int) ([]*content.Chapter, int, error) {
	chapters := repo.liveByContent(contentID)
	total := len(chapters)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return chapters[offset:end], total, nil
}

func (repo *fakeChapterRepo) ListAllByContent(_ context.Context, contentID string) ([]*content.Chapter, error) {
	return repo.liveByContent(contentID), nil
}

func (repo *fakeChapterRepo) FindByID(_ context.Context, id string) (*content.Chapter, error) {
	if chapter := repo.live(id); chapter != nil {
		copied := *chapter
		return &copied, nil
	}
	return nil, apperr.NotFound("Chapter")
}

// NextChapterNumber scans deleted rows too: a removed trailing chapter keeps
// holding its slot.
func (repo *fakeChapterRepo) NextChapterNumber(_ context.Context, contentID string) (int, error) {
	max := 0
	for _, chapter := range repo.chapters {
		if chapter.ContentID == contentID && chapter.ChapterNumber > max {
			max = chapter.ChapterNumber
		}
	}
	return max + 1, nil
}

func (repo *fakeChapterRepo) Create(_ context.Context, chapter *content.Chapter) error {
	if repo.beforeCreate != nil {
		hook := repo.beforeCreate
		repo.beforeCreate = nil
		hook()
	}

	for _, id := range repo.order {
		existing := repo.live(id)
		if existing == nil {
			continue
		}
		if existing.ContentID == chapter.ContentID && existing.ChapterNumber == chapter.ChapterNumber {
			return uniqueViolation("uq_chapter_number")
		}
		if existing.Slug == chapter.Slug {
			return uniqueViolation("uq_chapter_slug")
		}
	}

	copied := *chapter
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	repo.chapters[copied.ID] = &copied
	repo.order = append(repo.order, copied.ID)
	return nil
}

func (repo *fakeChapterRepo) Update(_ context.Context, chapter *content.Chapter) error {
	existing := repo.live(chapter.ID)
	if existing == nil {
		return apperr.NotFound("Chapter")
	}
	existing.Title = chapter.Title
	existing.Description = chapter.Description
	existing.MediaURL = chapter.MediaURL
	existing.DurationSecs = chapter.DurationSecs
	existing.UpdatedAt = time.Now()
	return nil
}

func (repo *fakeChapterRepo) SoftDeleteCascade(_ context.Context, id string) error {
	existing := repo.live(id)
	if existing == nil {
		return apperr.NotFound("Chapter")
	}
	now := time.Now()
	existing.DeletedAt = &now

	for _, sectionID := range repo.sections.order {
		if section := repo.sections.live(sectionID); section != nil && section.ChapterID == id {
			section.DeletedAt = &now
		}
	}
	return nil
}

func (repo *fakeChapterRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	for _, id := range repo.order {
		if chapter := repo.live(id); chapter != nil && chapter.Slug == slug && chapter.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeSectionRepo mimics the section store with the (chapter_id, section_order)
// partial unique index.
type fakeSectionRepo struct {
	sections map[string]*content.Section
	order    []string
	chapters *fakeChapterRepo

	beforeCreate func()
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[string]*content.Section)}
}

func (repo *fakeSectionRepo) live(id string) *content.Section {
	section, found := repo.sections[id]
	if !found || section.DeletedAt != nil {
		return nil
	}
	return section
}

func (repo *fakeSectionRepo) liveByChapter(chapterID string) []*content.Section {
	var sections []*content.Section
	for _, id := range repo.order {
		if section := repo.live(id); section != nil && section.ChapterID == chapterID {
			sections = append(sections, section)
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].SectionOrder < sections[j].SectionOrder
	})
	return sections
}

func (repo *fakeSectionRepo) ListByChapter(_ context.Context, chapterID string, limit, offset int) ([]*content.Section, int, error) {
	sections := repo.liveByChapter(chapterID)
	total := len(sections)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return sections[offset:end], total, nil
}

func (repo *fakeSectionRepo) ListAllByContent(ctx context.Context, contentID string) ([]*content.Section, error) {
	var sections []*content.Section
	for _, chapter := range repo.chapters.liveByContent(contentID) {
		sections = append(sections, repo.liveByChapter(chapter.ID)...)
	}
	return sections, nil
}

func (repo *fakeSectionRepo) FindByID(_ context.Context, id string) (*content.Section, error) {
	if section := repo.live(id); section != nil {
		copied := *section
		return &copied, nil
	}
	return nil, apperr.NotFound("Section")
}

// NextSectionOrder scans deleted rows too, mirroring the high-water-mark
// derivation of the SQL store.
func (repo *fakeSectionRepo) NextSectionOrder(_ context.Context, chapterID string) (int, error) {
	max := -1
	for _, section := range repo.sections {
		if section.ChapterID == chapterID && section.SectionOrder > max {
			max = section.SectionOrder
		}
	}
	return max + 1, nil
}

func (repo *fakeSectionRepo) Create(_ context.Context, section *content.Section) error {
	if repo.beforeCreate != nil {
		hook := repo.beforeCreate
		repo.beforeCreate = nil
		hook()
	}

	for _, id := range repo.order {
		existing := repo.live(id)
		if existing == nil {
			continue
		}
		if existing.ChapterID == section.ChapterID && existing.SectionOrder == section.SectionOrder {
			return uniqueViolation("uq_section_order")
		}
		if existing.Slug == section.Slug {
			return uniqueViolation("uq_section_slug")
		}
	}

	copied := *section
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	repo.sections[copied.ID] = &copied
	repo.order = append(repo.order, copied.ID)
	return nil
}

func (repo *fakeSectionRepo) Update(_ context.Context, section *content.Section) error {
	existing := repo.live(section.ID)
	if existing == nil {
		return apperr.NotFound("Section")
	}
	existing.Title = section.Title
	existing.Body = section.Body
	existing.UpdatedAt = time.Now()
	return nil
}

func (repo *fakeSectionRepo) SoftDelete(_ context.Context, id string) error {
	existing := repo.live(id)
	if existing == nil {
		return apperr.NotFound("Section")
	}
	now := time.Now()
	existing.DeletedAt = &now
	return nil
}

func (repo *fakeSectionRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	for _, id := range repo.order {
		if section := repo.live(id); section != nil && section.Slug == slug && section.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeObjectStore records uploads and returns deterministic URLs.
type fakeObjectStore struct {
	puts map[string]int64
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{puts: make(map[string]int64)}
}

func (store *fakeObjectStore) Put(_ context.Context, key string, _ io.Reader, size int64, _ string) (string, error) {
	store.puts[key] = size
	return "https://cdn.tirtha.app/" + key, nil
}

func (store *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.tirtha.app/" + key + "?signed=1", nil
}

func (store *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(store.puts, key)
	return nil
}

// # Test Fixture

type fixture struct {
	contentRepo *fakeContentRepo
	chapterRepo *fakeChapterRepo
	sectionRepo *fakeSectionRepo
	objectStore *fakeObjectStore
	service     *content.Service
}

func newFixture() *fixture {
	contentRepo := newFakeContentRepo()
	chapterRepo := newFakeChapterRepo()
	sectionRepo := newFakeSectionRepo()
	chapterRepo.sections = sectionRepo
	sectionRepo.chapters = chapterRepo

	objectStore := newFakeObjectStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		contentRepo: contentRepo,
		chapterRepo: chapterRepo,
		sectionRepo: sectionRepo,
		objectStore: objectStore,
		service:     content.NewService(contentRepo, chapterRepo, sectionRepo, objectStore, logger),
	}
}

// seedWork creates a published work through the real service flow.
func seedWork(t *testing.T, fix *fixture, format content.Format, title string) *content.Content {
	t.Helper()

	work := &content.Content{
		Title:    title,
		Format:   format,
		Status:   content.StatusPublished,
		Language: "sa",
		AuthorID: uuidv7.New(),
	}
	require.NoError(t, fix.service.CreateContent(context.Background(), work))
	return work
}

// seedChapter appends a chapter through the real service flow.
func seedChapter(t *testing.T, fix *fixture, work *content.Content, title, mediaURL string) *content.Chapter {
	t.Helper()

	chapter := &content.Chapter{
		ContentID: work.ID,
		Title:     title,
		MediaURL:  mediaURL,
	}
	require.NoError(t, fix.service.CreateChapter(context.Background(), chapter))
	return chapter
}

// # Content Service Tests

/*
TestCreateContent_SlugDerivation verifies slug generation from the title and
collision suffixing against live rows.
*/
func TestCreateContent_SlugDerivation(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	first := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	assert.Equal(t, "bhagavad-gita", first.Slug)

	// A second work with the same title gets a suffixed slug, never an error.
	second := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^bhagavad-gita-[0-9a-f]{4,8}$`, second.Slug)

	// Both resolve by their own slug.
	found, err := fix.service.GetContent(ctx, second.Slug)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

/*
TestCreateContent_SlugRace exercises the bounded retry: a racer claims the
derived slug between the uniqueness probe and the insert.
*/
func TestCreateContent_SlugRace(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	racerAuthor := uuidv7.New()
	fix.contentRepo.beforeCreate = func() {
		racer := &content.Content{
			ID:       uuidv7.New(),
			Title:    "Upanishads",
			Slug:     "upanishads",
			Format:   content.FormatText,
			Status:   content.StatusPublished,
			Language: "sa",
			AuthorID: racerAuthor,
		}
		require.NoError(t, fix.contentRepo.Create(ctx, racer))
	}

	work := &content.Content{
		Title:    "Upanishads",
		Format:   content.FormatText,
		Status:   content.StatusPublished,
		Language: "sa",
		AuthorID: uuidv7.New(),
	}
	require.NoError(t, fix.service.CreateContent(ctx, work))

	assert.NotEqual(t, "upanishads", work.Slug)
	assert.Regexp(t, `^upanishads-[0-9a-f]{4,8}$`, work.Slug)
}

/*
TestCreateContent_Validation covers the rejection matrix for work creation.
*/
func TestCreateContent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(work *content.Content)
		field  string
	}{
		{"missing_title", func(w *content.Content) { w.Title = "" }, "title"},
		{"title_too_long", func(w *content.Content) { w.Title = strings.Repeat("x", 301) }, "title"},
		{"missing_language", func(w *content.Content) { w.Language = "" }, "language"},
		{"missing_author", func(w *content.Content) { w.AuthorID = "" }, "author_id"},
		{"unknown_format", func(w *content.Content) { w.Format = "scroll" }, "format"},
		{"unknown_status", func(w *content.Content) { w.Status = "hidden" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newFixture()

			work := &content.Content{
				Title:    "Rig Veda",
				Format:   content.FormatText,
				Status:   content.StatusPublished,
				Language: "sa",
				AuthorID: uuidv7.New(),
			}
			tt.mutate(work)

			err := fix.service.CreateContent(context.Background(), work)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestCreateContent_DefaultsToDraft verifies omitted status falls back to draft.
*/
func TestCreateContent_DefaultsToDraft(t *testing.T) {
	fix := newFixture()

	work := &content.Content{
		Title:    "Yoga Sutras",
		Format:   content.FormatText,
		Language: "sa",
		AuthorID: uuidv7.New(),
	}
	require.NoError(t, fix.service.CreateContent(context.Background(), work))

	assert.Equal(t, content.StatusDraft, work.Status)
}

/*
TestCreateContent_AcceptsEveryLifecycleStatus pins the full status enum on
the create path; the schema CHECK constraint enumerates the same four values,
so drift on either side shows up here.
*/
func TestCreateContent_AcceptsEveryLifecycleStatus(t *testing.T) {
	statuses := []content.Status{
		content.StatusDraft,
		content.StatusPendingReview,
		content.StatusPublished,
		content.StatusArchived,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			fix := newFixture()

			work := &content.Content{
				Title:    "Yoga Sutras",
				Format:   content.FormatText,
				Status:   status,
				Language: "sa",
				AuthorID: uuidv7.New(),
			}
			require.NoError(t, fix.service.CreateContent(context.Background(), work))
			assert.Equal(t, status, work.Status)
		})
	}
}

/*
TestGetContent_Dispatch verifies the UUID-or-slug identifier routing and the
view counter side effect.
*/
func TestGetContent_Dispatch(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Ramayana")

	byID, err := fix.service.GetContent(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, byID.ID)

	bySlug, err := fix.service.GetContent(ctx, "ramayana")
	require.NoError(t, err)
	assert.Equal(t, work.ID, bySlug.ID)

	assert.Equal(t, int64(2), fix.contentRepo.views[work.ID])
}

/*
TestGetContent_ViewCountFailureIsSwallowed verifies a counter hiccup never
breaks the read path.
*/
func TestGetContent_ViewCountFailureIsSwallowed(t *testing.T) {
	fix := newFixture()
	work := seedWork(t, fix, content.FormatText, "Mahabharata")

	fix.contentRepo.viewCountErr = assert.AnError

	found, err := fix.service.GetContent(context.Background(), work.ID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, found.ID)
}

/*
TestListContent_VisibilityPolicy verifies anonymous and member callers are
pinned to the published shelf while moderators browse freely.
*/
func TestListContent_VisibilityPolicy(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	published := seedWork(t, fix, content.FormatText, "Published Work")
	draft := &content.Content{
		Title:    "Draft Work",
		Format:   content.FormatText,
		Status:   content.StatusDraft,
		Language: "sa",
		AuthorID: uuidv7.New(),
	}
	require.NoError(t, fix.service.CreateContent(ctx, draft))

	// Anonymous caller: drafts invisible even when explicitly requested.
	works, total, err := fix.service.ListContent(ctx, content.Filter{Status: content.StatusDraft}, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, works, 1)
	assert.Equal(t, published.ID, works[0].ID)

	// Moderator sees the requested status.
	works, total, err = fix.service.ListContent(ctx, content.Filter{Status: content.StatusDraft}, sec.RoleModerator, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, works, 1)
	assert.Equal(t, draft.ID, works[0].ID)
}

/*
TestListContent_RejectsUnknownFilters verifies enum filters are validated,
not silently ignored.
*/
func TestListContent_RejectsUnknownFilters(t *testing.T) {
	fix := newFixture()

	_, _, err := fix.service.ListContent(context.Background(), content.Filter{Format: "scroll"}, sec.RoleAdmin, 20, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	_, _, err = fix.service.ListContent(context.Background(), content.Filter{Status: "hidden"}, sec.RoleAdmin, 20, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestRemoveContent verifies soft-delete semantics: the work vanishes from
every read path, its slug is immediately reclaimable, and children survive
untouched for a future restore.
*/
func TestRemoveContent(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	chapter := seedChapter(t, fix, work, "Arjuna Vishada Yoga", "")

	require.NoError(t, fix.service.RemoveContent(ctx, work.ID))

	// Invisible by ID and slug.
	_, err := fix.service.GetContent(ctx, work.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	_, err = fix.service.GetContent(ctx, "bhagavad-gita")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// Absent from listings.
	_, total, err := fix.service.ListContent(ctx, content.Filter{}, sec.RoleAdmin, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	// Double delete reports NotFound, not success.
	err = fix.service.RemoveContent(ctx, work.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// No cascade: the chapter row is still live underneath.
	assert.NotNil(t, fix.chapterRepo.live(chapter.ID))

	// The slug is free for a new work.
	replacement := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	assert.Equal(t, "bhagavad-gita", replacement.Slug)
}

/*
TestRegenerateSlug verifies explicit re-derivation, including the stable
result when the title is unchanged.
*/
func TestRegenerateSlug(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")

	// Unchanged title: the work's own row is excluded, slug stays put.
	slug, err := fix.service.RegenerateSlug(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "bhagavad-gita", slug)

	// Retitle then regenerate.
	work.Title = "Srimad Bhagavad Gita"
	require.NoError(t, fix.service.UpdateContent(ctx, work))

	slug, err = fix.service.RegenerateSlug(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "srimad-bhagavad-gita", slug)

	found, err := fix.service.GetContent(ctx, "srimad-bhagavad-gita")
	require.NoError(t, err)
	assert.Equal(t, work.ID, found.ID)
}

/*
TestAttachFile verifies upload wiring and the text-format rejection.
*/
func TestAttachFile(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	audio := seedWork(t, fix, content.FormatAudio, "Vishnu Sahasranama")

	fileURL, err := fix.service.AttachFile(ctx, audio.ID, "recitation.mp3", strings.NewReader("payload"), 7, "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tirtha.app/content/"+audio.ID+"/recitation.mp3", fileURL)

	stored, err := fix.service.GetContent(ctx, audio.ID)
	require.NoError(t, err)
	assert.Equal(t, fileURL, stored.FileURL)
	assert.Equal(t, int64(7), stored.FileSize)

	// Text works are composed of sections, never uploaded binaries.
	text := seedWork(t, fix, content.FormatText, "Isha Upanishad")
	_, err = fix.service.AttachFile(ctx, text.ID, "scan.pdf", strings.NewReader("x"), 1, "application/pdf")
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
}
