package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check config, backend and history database health",
	Long: `Check the health of erpdeck by verifying:
  • Config file loading
  • Backend reachability (capabilities endpoint)
  • History database accessibility

Useful for debugging connection issues before starting a session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 erpdeck Health Check"))
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 1: Loading config..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load config:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Config loaded"), fmt.Sprintf("(backend: %s, page size: %d)", cfg.BackendURL, cfg.PageSize))
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 2: Checking backend..."))
		client := internal.NewHTTPClient(cfg.BackendURL)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		caps, err := client.Capabilities(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Backend unreachable:"), err)
		} else {
			fmt.Println(successStyle.Render("✅ Backend reachable"), fmt.Sprintf("(%d capabilities advertised)", len(caps.Capabilities)))
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 3: Checking history database..."))
		dbPath, err := cfg.HistoryDBPath()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Cannot resolve history path:"), err)
			os.Exit(1)
		}
		store, err := internal.OpenHistoryStore(dbPath)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ History database unavailable:"), err)
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		summaries, err := store.List()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ History query failed:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ History database OK"), fmt.Sprintf("(%d saved conversation(s) at %s)", len(summaries), dbPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
