package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fachschaft/dms/src/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse products interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(apiClient, noColor)
	},
}
