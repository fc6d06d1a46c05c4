package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var (
	capsIntroStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	capsItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	capsExampleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true)
)

// capabilitiesCmd represents the capabilities command
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Show what the assistant backend can answer",
	Long:  `Fetch and display the backend's introduction, capabilities and example queries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := internal.NewHTTPClient(cfg.BackendURL)
		caps, err := client.Capabilities(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch capabilities: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, capsIntroStyle.Render(caps.Intro))
		fmt.Fprintln(out)
		for _, capability := range caps.Capabilities {
			fmt.Fprintf(out, "  • %s\n", capsItemStyle.Render(capability))
		}
		if len(caps.Examples) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Example queries:")
			for _, example := range caps.Examples {
				fmt.Fprintf(out, "  %s\n", capsExampleStyle.Render(example))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}
