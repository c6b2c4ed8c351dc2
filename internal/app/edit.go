package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
)

func newEditCmd() *cobra.Command {
	var (
		name    string
		author  string
		credits []string
		comment string
	)

	cmd := &cobra.Command{
		Use:   "edit <fingerprint>...",
		Short: "Edit catalog entries",
		Long: `Edit the metadata of one or more entries.

With a single fingerprint every given field is applied, including --name.
With several fingerprints the edit is a batch: names are never touched, and
--author only overwrites when a non-empty value was given, so a batch can
fill in credits without clobbering per-entry authors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load(cfg.CatalogFile())

			var patch catalog.Patch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("author") {
				patch.Author = &author
			}
			if cmd.Flags().Changed("credits") {
				patch.Credits = &credits
			}
			if cmd.Flags().Changed("comment") {
				patch.Comment = &comment
			}

			var mode catalog.Mode
			if len(args) == 1 {
				mode = catalog.Single(args[0])
			} else {
				mode = catalog.Batch(args)
				if patch.Name != nil {
					warn("--name is ignored when editing several entries")
				}
			}

			changed, err := mode.Apply(cat, patch, time.Now())
			if err != nil {
				return err
			}
			if changed == 0 {
				fmt.Println("nothing to change")
				return nil
			}
			if err := catalog.Save(cfg.CatalogFile(), cat); err != nil {
				return err
			}
			ok("updated %d entries", changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (single edit only)")
	cmd.Flags().StringVar(&author, "author", "", "Author label")
	cmd.Flags().StringArrayVar(&credits, "credits", nil, "Credit line (repeatable; replaces all lines)")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-text comment (empty clears)")

	return cmd
}
