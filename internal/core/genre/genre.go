// Package genre resolves genre names to stored genres, creating them on first
// use and reusing them afterwards.
package genre

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Genre is a named category shared by many books.
//
// # Rules
//   - A name maps to at most one Genre. Matching is case-sensitive.
//   - Genres are never deleted.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Normalize trims surrounding whitespace and applies Unicode NFC, so that
// visually identical names share one row. Case is preserved.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// UniqueNames normalizes names and drops repeats, keeping first-seen order.
// Blank names are dropped.
func UniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = Normalize(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
