package cmd

import (
	"fmt"
	"os"

	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	backendURL string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "erpdeck",
	Short: "Terminal assistant and analytics console for your ERP backend",
	Long: `A terminal console for querying ERP data through the AI assistant backend.

Query results come back as named record collections and are rendered through
interchangeable views (cards, table, charts), each collection with its own
pagination and expansion state.

Features:
  • Interactive chat with the assistant backend
  • One-shot analytics queries rendered straight to stdout
  • Card, table and chart views with per-dataset paging
  • Conversation history stored locally in SQLite
  • Export in multiple formats (JSONL, Markdown, YAML, JSON)

Quick Start:
  erpdeck chat                          # Start an interactive session
  erpdeck ask "show open work orders"   # One-shot query
  erpdeck history                       # List saved conversations
  erpdeck export <conversation-id>      # Export a saved conversation`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves and loads the config file, honoring --config and
// --backend overrides.
func loadConfig() (internal.Config, error) {
	path, err := internal.ConfigPath(configPath)
	if err != nil {
		return internal.Config{}, err
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return internal.Config{}, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (overrides config)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
