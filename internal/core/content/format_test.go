// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tirtha/internal/core/content"
	"github.com/taibuivan/tirtha/internal/platform/apperr"
)

/*
TestFormat_Capabilities verifies the structural capability table that governs
the whole hierarchy: which formats own chapters, which chapters own sections,
and which chapters must carry media.
*/
func TestFormat_Capabilities(t *testing.T) {
	tests := []struct {
		name                 string
		format               content.Format
		allowsChapters       bool
		allowsSections       bool
		requiresChapterMedia bool
	}{
		{"text", content.FormatText, true, true, false},
		{"audio", content.FormatAudio, true, false, true},
		{"video", content.FormatVideo, true, false, true},
		{"pdf", content.FormatPDF, false, false, false},
		{"unknown_forbids_everything", content.Format("epub"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := tt.format.Capabilities()

			assert.Equal(t, tt.allowsChapters, caps.AllowsChapters)
			assert.Equal(t, tt.allowsSections, caps.AllowsSections)
			assert.Equal(t, tt.requiresChapterMedia, caps.RequiresChapterMedia)
		})
	}
}

/*
TestValidateChapterWrite covers every format/media combination of the chapter
admission rule.
*/
func TestValidateChapterWrite(t *testing.T) {
	tests := []struct {
		name     string
		format   content.Format
		mediaURL string
		legal    bool
	}{
		{"text_without_media", content.FormatText, "", true},
		{"text_with_media_is_ignored_not_rejected", content.FormatText, "https://cdn.tirtha.app/x.mp3", true},
		{"audio_with_media", content.FormatAudio, "https://cdn.tirtha.app/x.mp3", true},
		{"audio_without_media", content.FormatAudio, "", false},
		{"video_with_media", content.FormatVideo, "https://cdn.tirtha.app/x.mp4", true},
		{"video_without_media", content.FormatVideo, "", false},
		{"pdf_rejects_chapters", content.FormatPDF, "", false},
		{"pdf_rejects_chapters_even_with_media", content.FormatPDF, "https://cdn.tirtha.app/x.mp3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := content.ValidateChapterWrite(tt.format, tt.mediaURL)

			if tt.legal {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "STRUCTURAL_VIOLATION", ae.Code)
			assert.Equal(t, 422, ae.HTTPStatus)
		})
	}
}

/*
TestValidateSectionWrite confirms sections are a text-only construct.
*/
func TestValidateSectionWrite(t *testing.T) {
	tests := []struct {
		name   string
		format content.Format
		legal  bool
	}{
		{"text", content.FormatText, true},
		{"audio", content.FormatAudio, false},
		{"video", content.FormatVideo, false},
		{"pdf", content.FormatPDF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := content.ValidateSectionWrite(tt.format)

			if tt.legal {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "STRUCTURAL_VIOLATION"))
		})
	}
}
