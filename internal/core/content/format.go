// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"

	"github.com/taibuivan/tirtha/internal/platform/apperr"
)

// # Structural Capability Table

// Capabilities describes the legal child structure of one [Format].
//
// This table is the single source of truth for hierarchy rules: every
// chapter/section mutation path consults it here, before any ordinal is
// assigned or any write is attempted.
type Capabilities struct {
	// AllowsChapters is false only for single-file works (pdf).
	AllowsChapters bool

	// AllowsSections permits ordered body-text sections under chapters.
	AllowsSections bool

	// RequiresChapterMedia forces every chapter to carry a media URL.
	// When false, media fields on chapters are ignored and blanked.
	RequiresChapterMedia bool
}

// Capabilities returns the structural rules for the format.
// Unknown formats get the zero value, which forbids everything.
func (f Format) Capabilities() Capabilities {
	switch f {
	case FormatText:
		return Capabilities{AllowsChapters: true, AllowsSections: true}
	case FormatAudio, FormatVideo:
		return Capabilities{AllowsChapters: true, RequiresChapterMedia: true}
	case FormatPDF:
		return Capabilities{}
	}
	return Capabilities{}
}

// # Structural Validation

// ValidateChapterWrite checks whether the parent format admits a chapter with
// the given media reference. It must run before ordinal assignment so a
// rejected request never consumes a chapter number.
//
// Returns a STRUCTURAL_VIOLATION [apperr.AppError] naming the broken rule,
// or nil when the write is legal.
func ValidateChapterWrite(format Format, mediaURL string) error {
	caps := format.Capabilities()

	if !caps.AllowsChapters {
		return apperr.StructuralViolation(
			fmt.Sprintf("Chapters are not permitted for %s-format content", format))
	}

	if caps.RequiresChapterMedia && mediaURL == "" {
		return apperr.StructuralViolation(
			fmt.Sprintf("Chapters of %s-format content require a media URL", format))
	}

	return nil
}

// ValidateSectionWrite checks whether the parent format admits sections.
//
// Returns a STRUCTURAL_VIOLATION [apperr.AppError], or nil when legal.
func ValidateSectionWrite(format Format) error {
	if !format.Capabilities().AllowsSections {
		return apperr.StructuralViolation(
			fmt.Sprintf("Sections are not permitted for %s-format content", format))
	}
	return nil
}
