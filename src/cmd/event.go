package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventInactive bool

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <name> <price-group>",
	Short: "Create an event",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.AddEvent(args[0], args[1], !eventInactive); err != nil {
			return err
		}
		fmt.Println("Event created.")
		return nil
	},
}

func init() {
	eventAddCmd.Flags().BoolVar(&eventInactive, "inactive", false, "create the event inactive")
	eventCmd.AddCommand(eventAddCmd)
}
