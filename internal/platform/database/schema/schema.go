// Package schema holds table and column names for SQL builders, so that
// repositories never spell identifiers inline.
package schema

import "strings"

// List joins column names for a SELECT or INSERT column list.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}

// Prefixed qualifies each column with alias (e.g. "b.title").
func Prefixed(alias string, columns ...string) string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return strings.Join(out, ", ")
}
