package remote

import (
	"sort"
	"time"

	"github.com/justalter/dancectl/internal/catalog"
)

// ChangeKind classifies one local/remote discrepancy.
type ChangeKind int

const (
	// Update means the fingerprint exists on both sides with differing
	// fields.
	Update ChangeKind = iota
	// NewRemote means the remote catalog has an entry the local one
	// lacks entirely.
	NewRemote
)

func (k ChangeKind) String() string {
	switch k {
	case Update:
		return "UPDATE"
	case NewRemote:
		return "NEW"
	default:
		return "UNKNOWN"
	}
}

// Change is one detected discrepancy awaiting a merge decision. It carries
// a copy of the remote entry so a decision can be applied after the
// snapshot itself is gone.
type Change struct {
	Fingerprint string
	Kind        ChangeKind
	Remote      *catalog.Entry
}

// Diff compares the local catalog against a remote snapshot field by
// field. Comparison is values-based, not hash-of-blob: the caller renders
// which field changed so a human can decide between local and remote.
//
// Fingerprints present only locally never appear in the result; the
// remote side is never a reason to forget local knowledge. The result is
// sorted by fingerprint for stable display.
func Diff(local, remote catalog.Catalog) []Change {
	var changes []Change
	for fp, re := range remote {
		le, ok := local[fp]
		if !ok {
			changes = append(changes, Change{Fingerprint: fp, Kind: NewRemote, Remote: re.Clone()})
			continue
		}
		if !le.Equal(re) {
			changes = append(changes, Change{Fingerprint: fp, Kind: Update, Remote: re.Clone()})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Fingerprint < changes[j].Fingerprint
	})
	return changes
}

// Apply resolves one conflict in the remote's favor: the local entry's
// fields are overwritten wholesale and Updated is stamped with now's date.
func Apply(cat catalog.Catalog, fp string, remote *catalog.Entry, now time.Time) {
	e := remote.Clone()
	e.Touch(now)
	cat[fp] = e
}
