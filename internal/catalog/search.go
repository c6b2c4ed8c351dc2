package catalog

import "strings"

// Matches reports whether the entry (or its fingerprint) matches the query,
// case-insensitively, over name, author and fingerprint, the same fields
// the collection is usually browsed by.
func Matches(fp string, e *Entry, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Author), q) {
		return true
	}
	return strings.Contains(strings.ToLower(fp), q)
}
