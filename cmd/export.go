package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osoko/erpdeck/internal"
	"github.com/osoko/erpdeck/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Export a saved conversation",
	Long: `Export a conversation from history in the chosen format.

Formats: json (pretty document), jsonl (one message per line), yaml,
md/markdown (datasets rendered as tables).`,
	Args: cobra.ExactArgs(1),
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

		conv, err := store.Load(args[0])
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			return exporter.Export(conv, cmd.OutOrStdout())
		}

		path := exportOutput
		if filepath.Ext(path) == "" {
			path = fmt.Sprintf("%s.%s", path, exporter.Extension())
		}
		f, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		defer func() { _ = f.Close() }()

		if err := exporter.Export(conv, f); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		internal.LogInfo("Exported conversation %s to %s", conv.ID, path)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, jsonl, yaml, md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to stdout)")
}
