// Package scan walks the local collection, fingerprints every asset file
// and reconciles the result against the catalog: new files get entries,
// renamed files keep their annotations, and files re-exported in place have
// their annotations migrated to the new fingerprint.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/fingerprint"
)

// DefaultPattern matches the dance bundles the collection is made of.
const DefaultPattern = "**/*.unity3d"

// Inventory maps fingerprint to the absolute path currently holding that
// content. Rebuilt from scratch on every scan, never persisted: an entry's
// only durable identity is its fingerprint.
type Inventory map[string]string

// Result summarizes what one scan did to the catalog.
type Result struct {
	Total    int // files successfully fingerprinted
	New      int // entries created
	Renamed  int // entries whose name was refreshed from disk
	Migrated int // entries carried to a new fingerprint
	Skipped  int // files that could not be read this pass
}

// Scanner reconciles a directory tree against a catalog.
type Scanner struct {
	Root     string   // collection root
	Patterns []string // doublestar globs relative to Root; DefaultPattern if empty
	StripExt bool     // derive entry names without the file extension
	Authors  *AuthorTable
	Workers  int              // parallel hashers; NumCPU if zero
	Now      func() time.Time // stamp source for new/changed entries
}

type hashed struct {
	path string // absolute
	name string
	fp   string
	err  error
}

// Scan discovers asset files under Root, fingerprints them with bounded
// parallelism and folds the results into cat sequentially in discovery
// order. Each fingerprint reconciles once per pass; further files with the
// same content only count toward the total. A file that cannot be read is
// skipped; it never fails the scan.
func (s *Scanner) Scan(ctx context.Context, cat catalog.Catalog) (Inventory, Result, error) {
	// Root may be relative (it usually is, coming from config). Author
	// inference compares paths against it, so both sides must be absolute.
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, Result{}, err
	}
	paths, err := s.discover(root)
	if err != nil {
		return nil, Result{}, err
	}

	results := make([]hashed, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fp, err := fingerprint.File(path)
			results[i] = hashed{path: path, name: filepath.Base(path), fp: fp, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Result{}, err
	}

	// Everything on disk this pass, known before reconciling. Migration
	// must not fire when the old content still exists somewhere else, and
	// a skipped file may still hold old content we could not hash.
	onDisk := make(map[string]bool, len(results))
	skipped := make(map[string]bool)
	for _, r := range results {
		if r.err != nil {
			skipped[s.entryName(r.name)] = true
			continue
		}
		onDisk[r.fp] = true
	}

	inv := make(Inventory, len(results))
	seen := make(map[string]bool, len(results))
	var res Result
	for _, r := range results {
		if r.err != nil {
			res.Skipped++
			continue
		}
		res.Total++
		if seen[r.fp] {
			// Duplicate content under another name. The first path
			// already reconciled this fingerprint and keeps the name.
			continue
		}
		seen[r.fp] = true
		inv[r.fp] = r.path

		if e, ok := cat[r.fp]; ok {
			// Known content. The filesystem's current name is always
			// the truth; annotations stay untouched.
			if e.Name != s.entryName(r.name) {
				e.Name = s.entryName(r.name)
				e.Touch(s.now())
				res.Renamed++
			}
			continue
		}

		if old, oldFP := s.findByName(cat, r.name, onDisk, skipped); old != nil {
			// Same name, new content, old content gone: the file was
			// re-exported in place. Carry the annotations over to the
			// new key and retire the old one.
			migrated := old.Clone()
			migrated.Name = s.entryName(r.name)
			migrated.Touch(s.now())
			cat[r.fp] = migrated
			delete(cat, oldFP)
			res.Migrated++
			continue
		}

		cat[r.fp] = &catalog.Entry{
			Name:    s.entryName(r.name),
			Author:  s.Authors.Infer(r.path, root),
			Credits: []string{},
			Updated: s.now().Format(catalog.DateFormat),
		}
		res.New++
	}
	return inv, res, nil
}

// Missing returns the fingerprints of catalog entries with no file in the
// inventory, in canonical catalog order. These entries are retained by a
// normal scan; pruning them is an explicit, separate decision.
func Missing(cat catalog.Catalog, inv Inventory) []string {
	var out []string
	for _, fp := range cat.SortedFingerprints() {
		if _, ok := inv[fp]; !ok {
			out = append(out, fp)
		}
	}
	return out
}

// Prune removes every entry with no file in the inventory and returns how
// many were removed. Annotations for the removed entries are lost.
func Prune(cat catalog.Catalog, inv Inventory) int {
	n := 0
	for fp := range cat {
		if _, ok := inv[fp]; !ok {
			delete(cat, fp)
			n++
		}
	}
	return n
}

// discover walks the absolute root and returns the absolute paths of every
// file matching the scanner's patterns, in walk order.
func (s *Scanner) discover(root string) ([]string, error) {
	patterns := s.Patterns
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it, keep scanning the rest.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, pat := range patterns {
			if ok, _ := doublestar.Match(pat, rel); ok {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// findByName locates an entry holding the given filename whose content no
// longer exists on disk. Returns (nil, "") when there is no migration
// candidate. A name shared with a file skipped this pass is never a
// candidate: the unreadable file may still hold the old content.
func (s *Scanner) findByName(cat catalog.Catalog, filename string, onDisk, skipped map[string]bool) (*catalog.Entry, string) {
	name := s.entryName(filename)
	if skipped[name] {
		return nil, ""
	}
	for fp, e := range cat {
		if e.Name == name && !onDisk[fp] {
			return e, fp
		}
	}
	return nil, ""
}

func (s *Scanner) entryName(filename string) string {
	if s.StripExt {
		return strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	return filename
}

func (s *Scanner) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
