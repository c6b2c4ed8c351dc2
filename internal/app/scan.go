package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/scan"
)

type scanOutcome struct {
	inv scan.Inventory
	res scan.Result
	err error
}

func newScanCmd() *cobra.Command {
	var (
		prune   bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the collection and reconcile the catalog",
		Long: `Walk the dances folder, fingerprint every bundle and update the catalog.

New files get entries (author guessed from their folder), renamed files keep
their annotations, and files overwritten in place are migrated to their new
fingerprint. Entries whose file is gone are kept; annotations for a bundle
that is merely unsynced should not vanish. Pass --prune to drop them instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), prune, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Remove catalog entries with no file on disk")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the scan result as JSON")

	return cmd
}

func runScan(ctx context.Context, prune, jsonOut bool) error {
	cat := catalog.Load(cfg.CatalogFile())
	inv, res, err := scanInBackground(ctx, cat)
	if err != nil {
		return err
	}

	pruned := 0
	if prune {
		missing := scan.Missing(cat, inv)
		for _, fp := range missing {
			warn("pruning %s (%s)", fp, cat[fp].Name)
		}
		pruned = scan.Prune(cat, inv)
	}

	if res.New+res.Renamed+res.Migrated > 0 || pruned > 0 {
		if err := catalog.Save(cfg.CatalogFile(), cat); err != nil {
			return err
		}
	}

	if jsonOut {
		out := struct {
			scan.Result
			Pruned  int `json:"pruned"`
			Missing int `json:"missing"`
			Entries int `json:"entries"`
		}{res, pruned, len(scan.Missing(cat, inv)), len(cat)}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	ok("scanned %d files: %d new, %d renamed, %d migrated", res.Total, res.New, res.Renamed, res.Migrated)
	if res.Skipped > 0 {
		warn("%d files could not be read this pass", res.Skipped)
	}
	if pruned > 0 {
		ok("pruned %d entries without files", pruned)
	} else if missing := scan.Missing(cat, inv); len(missing) > 0 {
		fmt.Printf("%d catalog entries have no file on disk (kept; see 'dancectl list --missing')\n", len(missing))
	}
	return nil
}

// scanInBackground runs the scan on a worker goroutine and waits for its
// result. The catalog has exactly one mutator at any moment: the worker
// while the scan runs, the command goroutine after the result arrives.
func scanInBackground(ctx context.Context, cat catalog.Catalog) (scan.Inventory, scan.Result, error) {
	done := make(chan scanOutcome, 1)
	go func() {
		inv, res, err := newScanner().Scan(ctx, cat)
		done <- scanOutcome{inv: inv, res: res, err: err}
	}()
	outcome := <-done
	return outcome.inv, outcome.res, outcome.err
}
