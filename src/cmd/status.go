package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fachschaft/dms/src/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check service reachability and token",
	Long: `Check that the service answers and the token authenticates.
Exits with code 0 when reachable, 1 otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus() error {
	start := time.Now()
	profile, err := apiClient.Profile(api.CurrentProfile())
	elapsed := time.Since(start)

	if err != nil {
		switch getOutputFormat() {
		case "json":
			if jsonErr := printJSON(map[string]any{
				"status":        "error",
				"error":         err.Error(),
				"response_time": elapsed.Milliseconds(),
			}); jsonErr != nil {
				return jsonErr
			}
		default:
			fmt.Printf("Status: ERROR\n")
			fmt.Printf("Error: %v\n", err)
			fmt.Printf("Response time: %dms\n", elapsed.Milliseconds())
		}
		return err
	}

	switch getOutputFormat() {
	case "json":
		return printJSON(map[string]any{
			"status":        "ok",
			"profile":       profile.Name(),
			"response_time": elapsed.Milliseconds(),
		})
	default:
		fmt.Printf("Status: OK\n")
		fmt.Printf("Authenticated as: %s\n", profile.Name())
		fmt.Printf("Response time: %dms\n", elapsed.Milliseconds())
	}
	return nil
}
