package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var (
	askView string
	askMode string
	askPage int
)

var (
	askResponseStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135"))

	askAnalysisStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true)

	askErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Run a one-shot analytics query",
	Long: `Send a single query and render every returned dataset to stdout.

All datasets render expanded in the chosen view. Use --page to pick the page
of larger collections; chart view ignores paging.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		mode := internal.Mode(cfg.Mode)
		if askMode != "" {
			mode = internal.Mode(askMode)
		}

		client := internal.NewHTTPClient(cfg.BackendURL)
		query := strings.Join(args, " ")
		return runAsk(cmd, client, query, mode, cfg.PageSize)
	},
}

// runAsk drives one submit/resolve cycle through the conversation log, then
// renders the assistant message. Split from RunE so tests can inject a stub
// client.
func runAsk(cmd *cobra.Command, client internal.QueryClient, query string, mode internal.Mode, pageSize int) error {
	session := internal.NewSession(pageSize)
	if _, err := session.Submit(query); err != nil {
		return err
	}

	result, err := client.Query(context.Background(), query, mode)
	if err != nil {
		result = internal.FailedResult(err)
	}
	msg := session.Resolve(result)

	out := cmd.OutOrStdout()
	if msg.Success != nil && !*msg.Success {
		fmt.Fprintln(out, askErrorStyle.Render("Query failed:"), msg.Error)
		if msg.Content != "" {
			fmt.Fprintln(out, msg.Content)
		}
		return nil
	}

	if msg.Content != "" {
		fmt.Fprintln(out, askResponseStyle.Render(wordwrap.String(msg.Content, 100)))
	}
	if msg.Analysis != "" {
		fmt.Fprintln(out, askAnalysisStyle.Render(wordwrap.String(msg.Analysis, 100)))
	}

	viewType := internal.ParseViewType(askView)
	renderer := internal.NewRenderer(pageSize, nil)
	for _, ds := range msg.Datasets() {
		ref := session.Ref(msg, ds.Key)
		session.Expanded.Toggle(ref) // expand everything for one-shot output
		session.Pages.Jump(ref, askPage, len(ds.Records))
		state := internal.DatasetState{
			Page:      session.Pages.Page(ref, len(ds.Records)),
			PageCount: session.Pages.PageCount(len(ds.Records)),
			Expanded:  session.Expanded.IsExpanded(ref),
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderer.Dataset(ds, state, viewType))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askView, "view", "table", "View strategy: cards, table or charts")
	askCmd.Flags().StringVar(&askMode, "mode", "", "Query mode: system or general (default from config)")
	askCmd.Flags().IntVar(&askPage, "page", 1, "Page to render for paged views")
}
