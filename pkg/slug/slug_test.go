// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tirtha/pkg/slug"
)

/*
TestFrom verifies the normalization pipeline across representative titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Bhagavad Gita", "bhagavad-gita"},
		{"mixed_case", "The RAMAYANA", "the-ramayana"},
		{"punctuation_stripped", "Shiva: Lord of Dance!", "shiva-lord-of-dance"},
		{"accents_removed", "Véda Sāra", "veda-sara"},
		{"underscores_collapsed", "upanishad__volume_one", "upanishad-volume-one"},
		{"whitespace_collapsed", "  Yoga   Sutras  ", "yoga-sutras"},
		{"leading_trailing_hyphens", "--gita--", "gita"},
		{"digits_kept", "108 Names", "108-names"},
		{"empty_input", "", ""},
		{"only_punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
