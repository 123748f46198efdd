// Copyright (c) 2026 Tirtha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sluggen turns titles into unique URL slugs within a catalog scope.

Each catalog (content, category, temple) owns its own slug namespace; the
caller supplies a [Checker] bound to that namespace. Soft-deleted rows do not
occupy slugs, which lets a deleted work's slug be reclaimed by a new one.

Algorithm:

 1. Normalize the title with [slug.From]. An empty result (emoji-only or
    punctuation-only titles) falls back to a random 8-character token.
 2. If the base slug is free, use it.
 3. Otherwise retry up to shortSuffixAttempts times with a fresh 4-character
    random suffix, checking each candidate.
 4. Past the retry budget, append an 8-character suffix and accept it without
    a check: 32 bits of entropy makes a collision implausible, and the partial
    unique index remains the final arbiter either way.
*/
package sluggen

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/taibuivan/tirtha/pkg/slug"
)

const (
	// shortSuffixAttempts is how many 4-char suffixed candidates are probed
	// before giving up and switching to the long-suffix fast path.
	shortSuffixAttempts = 5

	shortSuffixLen = 4
	longSuffixLen  = 8
)

// Checker reports whether a slug is already taken within one catalog scope.
//
// excludeID allows updates to keep their own slug: the row identified by
// excludeID is ignored during the existence check. Pass "" for creates.
type Checker interface {
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}

// Generate produces a slug for title that is unique according to checker.
//
// # Parameters
//   - ctx: Propagated to every existence check.
//   - checker: The catalog-scoped uniqueness probe.
//   - title: The raw human-readable title.
//   - excludeID: Row ID to ignore (for updates), or "" for creates.
func Generate(ctx context.Context, checker Checker, title string, excludeID string) (string, error) {
	base := slug.From(title)

	// Titles that normalize to nothing still need an addressable slug.
	if base == "" {
		base = randomToken(longSuffixLen)
	}

	taken, err := checker.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("sluggen: failed to check slug %q: %w", base, err)
	}
	if !taken {
		return base, nil
	}

	// Short random suffixes keep URLs readable for the common collision case
	// (two works sharing a title).
	for attempt := 0; attempt < shortSuffixAttempts; attempt++ {
		candidate := base + "-" + randomToken(shortSuffixLen)

		taken, err := checker.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("sluggen: failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	// Pathological collision rate: accept a long suffix unchecked. The
	// database unique index still backstops the one-in-four-billion case.
	return base + "-" + randomToken(longSuffixLen), nil
}

// randomToken returns a lowercase hex string of the given length.
func randomToken(length int) string {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		panic("sluggen: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)[:length]
}
