package tui

import (
	"github.com/justalter/dancectl/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI reports whether the command should run its interactive
// screen: stdout is a terminal, --no-input was not given, and no
// machine-output flag signals scripting intent.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}
	if noInput, _ := cmd.Flags().GetBool("no-input"); noInput {
		return false
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return false
	}
	return true
}
