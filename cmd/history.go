package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var historyDelete string

var (
	historyTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	historyIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	historyCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	historyDateStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved conversations",
	Long:  `List conversations saved from previous chat sessions, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dbPath, err := cfg.HistoryDBPath()
		if err != nil {
			return err
		}
		store, err := internal.OpenHistoryStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() { _ = store.Close() }()

		if historyDelete != "" {
			if err := store.Delete(historyDelete); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted conversation %s\n", historyDelete)
			return nil
		}

		summaries, err := store.List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(summaries) == 0 {
			fmt.Fprintln(out, "No saved conversations. Run 'erpdeck chat' to start one.")
			return nil
		}

		for _, s := range summaries {
			fmt.Fprintf(out, "%s\n  %s  %s  %s\n",
				historyTitleStyle.Render(s.Title),
				historyIDStyle.Render(s.ID),
				historyCountStyle.Render(fmt.Sprintf("%d messages", s.MessageCount)),
				historyDateStyle.Render(s.UpdatedAt.Format("2006-01-02 15:04")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDelete, "delete", "", "Delete the conversation with this ID")
}
