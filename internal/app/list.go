package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
)

func newListCmd() *cobra.Command {
	var (
		search  string
		missing bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries and their on-disk status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, search, missing)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name, author or fingerprint")
	cmd.Flags().BoolVar(&missing, "missing", false, "Only entries with no file on disk")

	return cmd
}

func runList(cmd *cobra.Command, search string, missingOnly bool) error {
	cat := catalog.Load(cfg.CatalogFile())
	inv, _, err := scanInBackground(cmd.Context(), cat)
	if err != nil {
		return err
	}

	shown := 0
	for _, fp := range cat.SortedFingerprints() {
		e := cat[fp]
		_, onDisk := inv[fp]
		if missingOnly && onDisk {
			continue
		}
		if !catalog.Matches(fp, e, search) {
			continue
		}
		shown++

		presence := color.GreenString("●")
		if !onDisk {
			presence = color.RedString("○")
		}
		fmt.Printf("%s %s  %-30s %s\n", presence, fp, e.Name, color.CyanString(e.Author))
		if e.Comment != "" {
			fmt.Printf("           %s\n", color.New(color.Faint).Sprint(e.Comment))
		}
	}

	fmt.Println()
	if missingOnly {
		header("%d entries without files (of %d total)", shown, len(cat))
	} else {
		header("%d entries shown, %d in catalog, %d on disk", shown, len(cat), len(inv))
	}
	return nil
}
