package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dancectl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dancectl %s\n", appVersion)
		},
	}
}
