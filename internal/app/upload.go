package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/remote"
)

func newUploadCmd() *cobra.Command {
	var contributor string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Publish the local catalog under your contributor id",
		Long: `Send a full snapshot of the local catalog to the configured endpoint.

Uploading is one-directional: whatever the server answers, the local
catalog is left exactly as it was.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := cfg.Upload.Endpoint
			if endpoint == "" {
				return fmt.Errorf("no upload endpoint configured; set upload.endpoint in the config")
			}
			if contributor == "" {
				contributor = cfg.Upload.ContributorID
			}
			if contributor == "" {
				return fmt.Errorf("no contributor id; pass --contributor or set upload.contributor_id")
			}

			cat := catalog.Load(cfg.CatalogFile())
			if len(cat) == 0 {
				return fmt.Errorf("local catalog is empty; run 'dancectl scan' first")
			}

			uploader, err := remote.NewUploader(endpoint, 0)
			if err != nil {
				return err
			}
			if err := uploader.Upload(cmd.Context(), cat, contributor); err != nil {
				return err
			}
			ok("uploaded %d entries as %s", len(cat), contributor)
			return nil
		},
	}

	cmd.Flags().StringVar(&contributor, "contributor", "", "Contributor id (default: config upload.contributor_id)")

	return cmd
}
