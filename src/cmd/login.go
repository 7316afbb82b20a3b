package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fachschaft/dms/src/paths"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save the API token",
	Long: `Save the API token to the config directory.

The token is found in the web interface under MyAccount > REST Token.

Examples:
  ` + getBinaryName() + ` login
  ` + getBinaryName() + ` login --token abc123...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin() error {
	tokenVal := token
	if tokenVal == "" {
		fmt.Print("Enter API token: ")

		if term.IsTerminal(int(syscall.Stdin)) {
			tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			fmt.Println()
			tokenVal = strings.TrimSpace(string(tokenBytes))
		} else {
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			tokenVal = strings.TrimSpace(line)
		}
	}

	if tokenVal == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(paths.TokenFile(), []byte(tokenVal+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("Token saved to %s\n", paths.TokenFile())
	return nil
}

func runLogout() error {
	tokenPath := paths.TokenFile()
	if _, err := os.Stat(tokenPath); os.IsNotExist(err) {
		fmt.Println("No saved token.")
		return nil
	}
	if err := os.Remove(tokenPath); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	fmt.Println("Token removed.")
	return nil
}
