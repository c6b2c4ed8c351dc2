package app

import (
	"context"
	"io/fs"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
)

const watchDebounce = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rescan automatically when the collection changes",
		Long: `Watch the dances folder and reconcile the catalog whenever files are
added, removed or rewritten.

Bursts of filesystem events coalesce into a single scan. A change arriving
while a scan runs does not start a second one; it schedules exactly one
follow-up scan once the current one finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx)
		},
	}
}

func runWatch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watchTree(watcher, cfg.DancesRoot()); err != nil {
		return err
	}
	header("watching %s", cfg.DancesRoot())

	cat := catalog.Load(cfg.CatalogFile())
	scanDone := make(chan scanOutcome, 1)
	debounce := time.NewTimer(0) // immediate first scan
	defer debounce.Stop()

	var gate scanGate

	startScan := func() {
		go func() {
			inv, res, err := newScanner().Scan(ctx, cat)
			scanDone <- scanOutcome{inv: inv, res: res, err: err}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			// Let an in-flight scan finish; it owns the catalog until
			// it reports back.
			if gate.running() {
				<-scanDone
			}
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				// New directories must be watched too.
				_ = watchTree(watcher, ev.Name)
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			warn("watcher: %v", err)

		case <-debounce.C:
			if gate.trigger() {
				startScan()
			}

		case outcome := <-scanDone:
			if outcome.err != nil {
				warn("scan: %v", outcome.err)
			} else {
				if outcome.res.New+outcome.res.Renamed+outcome.res.Migrated > 0 {
					if err := catalog.Save(cfg.CatalogFile(), cat); err != nil {
						warn("saving catalog: %v", err)
					}
					ok("scanned %d files: %d new, %d renamed, %d migrated",
						outcome.res.Total, outcome.res.New, outcome.res.Renamed, outcome.res.Migrated)
				}
			}
			if gate.done() {
				startScan()
			}
		}
	}
}

// scanGate serializes scans. At most one runs at a time; any number of
// triggers while one is running collapse into a single follow-up.
type scanGate struct {
	busy    bool
	pending bool
}

// trigger reports whether a scan should start now. If one is already
// running, a follow-up is recorded instead.
func (g *scanGate) trigger() bool {
	if g.busy {
		g.pending = true
		return false
	}
	g.busy = true
	return true
}

// done marks the running scan finished and reports whether a recorded
// follow-up should start.
func (g *scanGate) done() bool {
	g.busy = false
	if !g.pending {
		return false
	}
	g.pending = false
	g.busy = true
	return true
}

func (g *scanGate) running() bool { return g.busy }

// watchTree registers root and every directory below it. fsnotify watches
// are not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return nil
			}
		}
		return nil
	})
}
