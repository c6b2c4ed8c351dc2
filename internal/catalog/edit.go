package catalog

import (
	"fmt"
	"time"
)

// Mode selects between editing one entry and a batch. The two differ in
// which fields an edit may touch: a single edit may rename, a batch never
// does, and a batch only overwrites the author when a replacement was
// actually given.
type Mode struct {
	fingerprints []string
	batch        bool
}

// Single returns the edit mode for exactly one entry.
func Single(fp string) Mode {
	return Mode{fingerprints: []string{fp}}
}

// Batch returns the edit mode for a set of entries.
func Batch(fps []string) Mode {
	return Mode{fingerprints: append([]string(nil), fps...), batch: len(fps) > 1}
}

// Patch carries the field changes of one edit. A nil pointer means "leave
// this field alone"; a pointer to the zero value means "clear it".
type Patch struct {
	Name    *string
	Author  *string
	Credits *[]string
	Comment *string
}

// Apply writes the patch to every entry the mode covers, stamping Updated
// (with now's date) only on entries whose fields actually changed. It
// returns the number of entries modified. Unknown fingerprints are an
// error: editing an entry that does not exist means the caller's view of
// the catalog is stale.
func (m Mode) Apply(c Catalog, p Patch, now time.Time) (int, error) {
	for _, fp := range m.fingerprints {
		if _, ok := c[fp]; !ok {
			return 0, fmt.Errorf("no catalog entry for fingerprint %s", fp)
		}
	}
	changed := 0
	for _, fp := range m.fingerprints {
		e := c[fp]
		before := e.Clone()

		if p.Name != nil && !m.batch {
			e.Name = *p.Name
		}
		if p.Author != nil {
			if !m.batch || *p.Author != "" {
				e.Author = *p.Author
			}
		}
		if p.Credits != nil {
			e.Credits = append([]string(nil), (*p.Credits)...)
		}
		if p.Comment != nil {
			e.Comment = *p.Comment
		}

		if !e.Equal(before) {
			e.Touch(now)
			changed++
		}
	}
	return changed, nil
}
