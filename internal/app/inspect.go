package app

import (
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/whichshell/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively explore the walk (r to refresh, q to quit)",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return tui.Start(cmd.Context(), current.detect)
	},
}
