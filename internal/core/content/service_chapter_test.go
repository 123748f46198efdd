// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tirtha/internal/core/content"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
	"github.com/taibuivan/tirtha/pkg/pointer"
	"github.com/taibuivan/tirtha/pkg/uuidv7"
)

/*
TestCreateChapter_SequentialNumbering verifies the first chapter gets number
1 and siblings count up without gaps.
*/
func TestCreateChapter_SequentialNumbering(t *testing.T) {
	fix := newFixture()
	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")

	titles := []string{"Arjuna Vishada Yoga", "Sankhya Yoga", "Karma Yoga"}
	for index, title := range titles {
		chapter := seedChapter(t, fix, work, title, "")
		assert.Equal(t, index+1, chapter.ChapterNumber)
	}
}

/*
TestCreateChapter_StructuralRules covers the format capability matrix on the
chapter write path.
*/
func TestCreateChapter_StructuralRules(t *testing.T) {
	tests := []struct {
		name     string
		format   content.Format
		mediaURL string
		legal    bool
	}{
		{"text_chapter", content.FormatText, "", true},
		{"audio_chapter_with_media", content.FormatAudio, "https://cdn.tirtha.app/track.mp3", true},
		{"audio_chapter_without_media", content.FormatAudio, "", false},
		{"video_chapter_without_media", content.FormatVideo, "", false},
		{"pdf_never_owns_chapters", content.FormatPDF, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newFixture()
			work := seedWork(t, fix, tt.format, "Test Work")

			chapter := &content.Chapter{
				ContentID: work.ID,
				Title:     "Chapter One",
				MediaURL:  tt.mediaURL,
			}
			err := fix.service.CreateChapter(context.Background(), chapter)

			if tt.legal {
				require.NoError(t, err)
				assert.Equal(t, 1, chapter.ChapterNumber)
			} else {
				assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
			}
		})
	}
}

/*
TestCreateChapter_TextMediaIsBlanked verifies media fields sent for a text
chapter are silently dropped rather than rejected.
*/
func TestCreateChapter_TextMediaIsBlanked(t *testing.T) {
	fix := newFixture()
	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")

	chapter := &content.Chapter{
		ContentID:    work.ID,
		Title:        "Arjuna Vishada Yoga",
		MediaURL:     "https://cdn.tirtha.app/stray.mp3",
		DurationSecs: pointer.To(120),
	}
	require.NoError(t, fix.service.CreateChapter(context.Background(), chapter))

	assert.Empty(t, chapter.MediaURL)
	assert.Nil(t, chapter.DurationSecs)
}

/*
TestCreateChapter_RejectedWriteConsumesNoOrdinal verifies the structural
check runs before numbering: a failed PDF chapter leaves the sequence of a
later legal sibling untouched, and on text works a validation failure does
not burn a number either.
*/
func TestCreateChapter_RejectedWriteConsumesNoOrdinal(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	seedChapter(t, fix, work, "Arjuna Vishada Yoga", "")

	// Title validation failure, after the structural gate.
	invalid := &content.Chapter{ContentID: work.ID, Title: ""}
	err := fix.service.CreateChapter(ctx, invalid)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	next := seedChapter(t, fix, work, "Sankhya Yoga", "")
	assert.Equal(t, 2, next.ChapterNumber)
}

/*
TestCreateChapter_NumberRace simulates two writers deriving the same chapter
number: the loser hits the unique index, re-derives, and lands on a distinct
number.
*/
func TestCreateChapter_NumberRace(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	seedChapter(t, fix, work, "Arjuna Vishada Yoga", "")

	// The racer inserts chapter 2 inside our derive-then-insert window.
	fix.chapterRepo.beforeCreate = func() {
		racer := &content.Chapter{
			ID:            uuidv7.New(),
			ContentID:     work.ID,
			ChapterNumber: 2,
			Title:         "Racer Chapter",
			Slug:          "racer-chapter",
		}
		require.NoError(t, fix.chapterRepo.Create(ctx, racer))
	}

	chapter := &content.Chapter{ContentID: work.ID, Title: "Sankhya Yoga"}
	require.NoError(t, fix.service.CreateChapter(ctx, chapter))

	assert.Equal(t, 3, chapter.ChapterNumber)

	// All live numbers are distinct and gap-free.
	chapters, err := fix.chapterRepo.ListAllByContent(ctx, work.ID)
	require.NoError(t, err)
	numbers := make([]int, 0, len(chapters))
	for _, c := range chapters {
		numbers = append(numbers, c.ChapterNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

/*
TestCreateChapter_MissingParent verifies NotFound surfaces before any
structural or ordinal work.
*/
func TestCreateChapter_MissingParent(t *testing.T) {
	fix := newFixture()

	chapter := &content.Chapter{ContentID: uuidv7.New(), Title: "Orphan"}
	err := fix.service.CreateChapter(context.Background(), chapter)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestUpdateChapter_MediaRuleRechecked verifies an update may not clear the
media URL of an audio chapter.
*/
func TestUpdateChapter_MediaRuleRechecked(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatAudio, "Vishnu Sahasranama")
	chapter := seedChapter(t, fix, work, "Invocation", "https://cdn.tirtha.app/track.mp3")

	chapter.MediaURL = ""
	err := fix.service.UpdateChapter(ctx, chapter)
	assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))

	chapter.MediaURL = "https://cdn.tirtha.app/track-v2.mp3"
	require.NoError(t, fix.service.UpdateChapter(ctx, chapter))

	stored, err := fix.service.GetChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tirtha.app/track-v2.mp3", stored.MediaURL)
}

/*
TestRemoveChapter_CascadesAndKeepsGaps verifies the cascade to sections and
that remaining sibling numbers are never compacted or reused.
*/
func TestRemoveChapter_CascadesAndKeepsGaps(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	first := seedChapter(t, fix, work, "Arjuna Vishada Yoga", "")
	second := seedChapter(t, fix, work, "Sankhya Yoga", "")
	third := seedChapter(t, fix, work, "Karma Yoga", "")

	section := &content.Section{ChapterID: second.ID, Title: "Verse 1", Body: "..."}
	require.NoError(t, fix.service.CreateSection(ctx, section))

	require.NoError(t, fix.service.RemoveChapter(ctx, second.ID))

	// The chapter and its sections are gone together.
	_, err := fix.service.GetChapter(ctx, second.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	_, err = fix.service.GetSection(ctx, section.ID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	// Siblings keep their original numbers; the gap stays.
	chapters, total, err := fix.service.ListChapters(ctx, work.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, chapters, 2)
	assert.Equal(t, first.ID, chapters[0].ID)
	assert.Equal(t, 1, chapters[0].ChapterNumber)
	assert.Equal(t, third.ID, chapters[1].ID)
	assert.Equal(t, 3, chapters[1].ChapterNumber)

	// The next append continues past the high-water mark, never refilling 2.
	fourth := seedChapter(t, fix, work, "Jnana Yoga", "")
	assert.Equal(t, 4, fourth.ChapterNumber)
}

/*
TestRemoveChapter_TrailingNumberNotReused verifies the high-water mark
includes soft-deleted rows: removing the LAST chapter must not hand its
number to the next append.
*/
func TestRemoveChapter_TrailingNumberNotReused(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	seedChapter(t, fix, work, "Arjuna Vishada Yoga", "")
	second := seedChapter(t, fix, work, "Sankhya Yoga", "")

	require.NoError(t, fix.service.RemoveChapter(ctx, second.ID))

	replacement := seedChapter(t, fix, work, "Karma Yoga", "")
	assert.Equal(t, 3, replacement.ChapterNumber)
}

/*
TestListChapters_MissingParent verifies a listing under an absent or removed
work reports NotFound, not an empty page.
*/
func TestListChapters_MissingParent(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	_, _, err := fix.service.ListChapters(ctx, uuidv7.New(), 20, 0)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	work := seedWork(t, fix, content.FormatText, "Bhagavad Gita")
	require.NoError(t, fix.service.RemoveContent(ctx, work.ID))

	_, _, err = fix.service.ListChapters(ctx, work.ID, 20, 0)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
