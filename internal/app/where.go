package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
)

func newWhereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where <fingerprint>",
		Short: "Print the file currently holding a fingerprint's content",
		Long: `Resolve a fingerprint to its current path.

Paths are never stored in the catalog (only the fingerprint is durable),
so this rescans the collection to build a fresh inventory first. A unique
prefix of the fingerprint is enough.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load(cfg.CatalogFile())
			inv, _, err := scanInBackground(cmd.Context(), cat)
			if err != nil {
				return err
			}

			prefix := strings.ToLower(args[0])
			var matches []string
			for fp := range inv {
				if strings.HasPrefix(fp, prefix) {
					matches = append(matches, fp)
				}
			}
			switch len(matches) {
			case 0:
				if _, ok := cat[prefix]; ok {
					return fmt.Errorf("entry %s exists but its file is not on disk", prefix)
				}
				return fmt.Errorf("no file with fingerprint %s", prefix)
			case 1:
				fmt.Println(inv[matches[0]])
				return nil
			default:
				return fmt.Errorf("fingerprint prefix %s is ambiguous (%s)", prefix, strings.Join(matches, ", "))
			}
		},
	}
}
