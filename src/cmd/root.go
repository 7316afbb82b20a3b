// Package cmd implements the CLI commands of the dms client.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fachschaft/dms/src/api"
	"github.com/fachschaft/dms/src/paths"
	"github.com/fachschaft/dms/src/search"
)

var (
	// Build info - set via -ldflags at build time
	ProjectName = "dms"
	Version     = "dev"
	CommitID    = "unknown"
	BuildDate   = "unknown"

	cfgFile string
	server  string
	token   string
	output  string
	noColor bool
	timeout int

	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   getBinaryName(),
	Short: "CLI client for the drink management system",
	Long:  `dms is a command-line client for the drink management system: list users, products and sales, and order or buy drinks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without a configured server
		switch cmd.Name() {
		case "config", "version", "completions", "login", "logout":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "config" || cmd.Parent().Name() == "shell") {
			return nil
		}
		if err := migrateLegacyConfig(search.NewSelector(os.Stdin, os.Stdout)); err != nil {
			return err
		}
		return initClient()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "API base address")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "API token")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: json, table, plain")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 0, "request timeout in seconds")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir := paths.ConfigDir()
		os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("cli")
		viper.SetConfigType("yaml")
	}

	// Defaults
	viper.SetDefault("server.address", "https://drinks.fachschaft.tf/api")
	viper.SetDefault("server.token", "")
	viper.SetDefault("server.timeout", 30)
	viper.SetDefault("output.format", "table")
	viper.SetDefault("config_version", 1)

	viper.ReadInConfig()
}

// initClient builds the API client from flags, environment and config,
// in that order of precedence.
func initClient() error {
	serverAddr := viper.GetString("server.address")
	if server != "" {
		serverAddr = server
	}
	if serverAddr == "" {
		return fmt.Errorf("server address not configured. Use --server or run 'config set server.address <url>'")
	}

	tokenVal := token
	if tokenVal == "" {
		tokenVal = os.Getenv("DMS_TOKEN")
	}
	if tokenVal == "" {
		tokenVal = viper.GetString("server.token")
	}
	if tokenVal == "" {
		tokenVal = readSavedToken()
	}
	if tokenVal == "" {
		return fmt.Errorf("no API token configured. Run '%s login' or set server.token", getBinaryName())
	}

	timeoutVal := viper.GetInt("server.timeout")
	if timeout > 0 {
		timeoutVal = timeout
	}
	if timeoutVal == 0 {
		timeoutVal = 30
	}

	api.ProjectName = ProjectName
	api.Version = Version
	apiClient = api.NewClient(serverAddr, tokenVal, timeoutVal)
	slog.Debug("api client ready", "server", serverAddr, "timeout", timeoutVal)
	return nil
}

// migrateLegacyConfig moves the flat pre-1 config layout (top-level
// "token" key) into the current one and bumps config_version. Once
// server.token is populated the legacy key is ignored.
func migrateLegacyConfig(sel *search.Selector) error {
	if !viper.IsSet("token") || viper.GetString("token") == "" {
		return nil
	}
	if viper.GetString("server.token") != "" {
		return nil
	}

	fmt.Fprintf(sel.Out, "Found config at %s\n", viper.ConfigFileUsed())
	fmt.Fprintln(sel.Out, "New version of config available.")
	update, err := sel.YesNo("Update config (recommended)?", true)
	if err != nil {
		return err
	}
	if !update {
		// Carry the legacy token for this invocation only.
		viper.Set("server.token", viper.GetString("token"))
		return nil
	}

	viper.Set("server.token", viper.GetString("token"))
	viper.Set("token", nil)
	viper.Set("config_version", 1)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	fmt.Fprintln(sel.Out, "Config updated.")
	return nil
}

// loadAliases reads the alias table from config, alias keys
// lowercased, in stable order.
func loadAliases() []search.Alias {
	raw := viper.GetStringMapString("aliases")
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	aliases := make([]search.Alias, 0, len(keys))
	for _, k := range keys {
		aliases = append(aliases, search.Alias{Alias: strings.ToLower(k), Name: raw[k]})
	}
	return aliases
}

func readSavedToken() string {
	data, err := os.ReadFile(paths.TokenFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getBinaryName() string {
	return filepath.Base(os.Args[0])
}

func getOutputFormat() string {
	if output != "" {
		return output
	}
	return viper.GetString("output.format")
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return paths.ConfigFile()
}
