package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/osoko/erpdeck/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export exports a conversation to Markdown format
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", conv.Title)
	_, _ = fmt.Fprintf(w, "**ID:** %s  \n", conv.ID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(conv.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range conv.Messages {
		_, _ = fmt.Fprintf(w, "**%s:** (%s)\n\n", msg.Actor, msg.CreatedAt.Format("2006-01-02 15:04:05"))

		if msg.Content != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", msg.Content)
		}
		if msg.Analysis != "" {
			_, _ = fmt.Fprintf(w, "> %s\n\n", msg.Analysis)
		}
		if msg.Error != "" {
			_, _ = fmt.Fprintf(w, "**Error:** %s\n\n", msg.Error)
		}

		for _, ds := range msg.Datasets() {
			writeDatasetTable(w, ds)
		}

		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}
	return nil
}

// writeDatasetTable renders a dataset as a markdown table. Headers come from
// the first record; missing fields in later records render as N/A.
func writeDatasetTable(w io.Writer, ds internal.Dataset) {
	_, _ = fmt.Fprintf(w, "### %s (%d records)\n\n", ds.Key, len(ds.Records))

	headers := ds.Records[0].Fields()
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | "))

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))

	for _, rec := range ds.Records {
		cells := make([]string, len(headers))
		for i, name := range headers {
			value, present := rec.Get(name)
			if !present {
				cells[i] = internal.NotAvailable
				continue
			}
			if c := internal.Classify(name, value); c.StatusLike {
				cells[i] = internal.FormatBadge(value)
			} else {
				cells[i] = escapeCell(internal.FormatValue(value))
			}
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	_, _ = fmt.Fprintf(w, "\n")
}

// escapeCell keeps pipes in values from breaking the table
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
