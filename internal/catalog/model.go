// Package catalog holds the in-memory dance catalog and its canonical
// on-disk JSON form. The catalog maps content fingerprints to metadata
// entries; the fingerprint is the only durable identity a dance has.
package catalog

import (
	"sort"
	"time"
)

// DateFormat is the layout of the Updated field. Dates only, no time of day.
const DateFormat = "2006-01-02"

// UnknownAuthor is the sentinel stored when no author could be inferred.
const UnknownAuthor = "Unknown"

// Entry is the metadata record for one unique dance bundle.
type Entry struct {
	Name    string   `json:"name"`
	Author  string   `json:"author"`
	Credits []string `json:"credits"`
	Comment string   `json:"comment,omitempty"`
	Updated string   `json:"updated"`
}

// Catalog maps fingerprint to entry for the whole managed collection.
type Catalog map[string]*Entry

// New returns an empty catalog.
func New() Catalog {
	return make(Catalog)
}

// Clone returns a deep copy. Borrowed views handed to the UI or network
// layers never alias the owner's entries.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for fp, e := range c {
		out[fp] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	cp := *e
	cp.Credits = append([]string(nil), e.Credits...)
	return &cp
}

// Equal reports whether the user-visible fields of two entries match.
// Updated is ignored: it records when a change happened, not what the
// entry says. Comment treats absent and empty as the same value.
func (e *Entry) Equal(other *Entry) bool {
	if e.Name != other.Name || e.Author != other.Author {
		return false
	}
	if len(e.Credits) != len(other.Credits) {
		return false
	}
	for i := range e.Credits {
		if e.Credits[i] != other.Credits[i] {
			return false
		}
	}
	return e.Comment == other.Comment
}

// Touch stamps the entry with the given day.
func (e *Entry) Touch(now time.Time) {
	e.Updated = now.Format(DateFormat)
}

// normalize prepares an entry for serialization: credits never null,
// empty comment dropped by omitempty.
func (e *Entry) normalize() *Entry {
	cp := e.Clone()
	if cp.Credits == nil {
		cp.Credits = []string{}
	}
	return cp
}

// SortedFingerprints returns the catalog's keys ordered by
// (author, name, fingerprint) ascending, the canonical entry order of the
// published file.
func (c Catalog) SortedFingerprints() []string {
	fps := make([]string, 0, len(c))
	for fp := range c {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool {
		a, b := c[fps[i]], c[fps[j]]
		if a.Author != b.Author {
			return a.Author < b.Author
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return fps[i] < fps[j]
	})
	return fps
}
