package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/remote"
	"github.com/justalter/dancectl/internal/tui"
)

func newSyncCmd() *cobra.Command {
	var applyAll bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the catalog against the published copy",
		Long: `Fetch the published catalog from its mirrors and compare it field by
field against the local one.

Differences are resolved one by one in an interactive review (apply the
remote version or keep the local one), or wholesale with --apply-all.
Entries that exist only locally are never part of the comparison; syncing
never deletes local knowledge.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, applyAll)
		},
	}

	cmd.Flags().BoolVar(&applyAll, "apply-all", false, "Apply every remote difference without review")

	return cmd
}

type fetchOutcome struct {
	snapshot catalog.Catalog
	err      error
}

func runSync(cmd *cobra.Command, applyAll bool) error {
	cat := catalog.Load(cfg.CatalogFile())

	snapshot, err := fetchInBackground(cmd.Context())
	if err != nil {
		return err
	}

	changes := remote.Diff(cat, snapshot)
	if len(changes) == 0 {
		ok("catalog is in sync with the published copy")
		return nil
	}
	header("%d differences with the published copy", len(changes))

	var applied []remote.Change
	switch {
	case applyAll:
		applied = changes

	case tui.ShouldUseTUI(cmd):
		outcome, err := tui.RunReview(cat, changes)
		if err != nil {
			return err
		}
		applied = outcome.Applied
		if outcome.Ignored > 0 {
			fmt.Printf("kept local version for %d entries\n", outcome.Ignored)
		}

	default:
		for _, ch := range changes {
			fmt.Printf("  [%s] %s  %s\n", ch.Kind, ch.Fingerprint, ch.Remote.Name)
		}
		fmt.Println("\nrun again with --apply-all to accept everything, or in a terminal to review")
		return nil
	}

	if len(applied) == 0 {
		fmt.Println("no changes applied")
		return nil
	}
	now := time.Now()
	for _, ch := range applied {
		remote.Apply(cat, ch.Fingerprint, ch.Remote, now)
	}
	if err := catalog.Save(cfg.CatalogFile(), cat); err != nil {
		return err
	}
	ok("applied %d remote changes", len(applied))
	return nil
}

// fetchInBackground retrieves the remote snapshot on a worker goroutine so
// the command goroutine (the catalog owner) is never blocked inside the
// network layer.
func fetchInBackground(ctx context.Context) (catalog.Catalog, error) {
	client := remote.NewClient(cfg.Remote.Mirrors, cfg.Remote.Retries, cfg.RemoteTimeout())
	done := make(chan fetchOutcome, 1)
	go func() {
		snapshot, err := client.Fetch(ctx)
		done <- fetchOutcome{snapshot: snapshot, err: err}
	}()
	outcome := <-done
	return outcome.snapshot, outcome.err
}
