package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const inlineCardFields = 4

var (
	datasetTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	datasetMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	selectedMarkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	cardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	fieldNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	disclosureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	pagerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// DatasetState is the resolved view state the dispatcher renders with.
type DatasetState struct {
	Page      int
	PageCount int
	Expanded  bool
	Selected  bool
}

// Renderer dispatches a dataset to the active view strategy. The view type is
// session-scoped and passed in per call; the renderer stores none of it.
type Renderer struct {
	pageSize int
	charts   ChartRenderer
}

// NewRenderer creates a renderer. A nil chart renderer falls back to the
// bundled BarRenderer.
func NewRenderer(pageSize int, charts ChartRenderer) *Renderer {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if charts == nil {
		charts = &BarRenderer{}
	}
	return &Renderer{pageSize: pageSize, charts: charts}
}

// Dataset renders one dataset panel. Collapsed datasets show only the header
// bar; expanded ones add the active view strategy and, except for charts, the
// pagination footer.
func (r *Renderer) Dataset(ds Dataset, state DatasetState, viewType ViewType) string {
	var b strings.Builder
	b.WriteString(r.header(ds, state))

	if !state.Expanded {
		return b.String()
	}
	b.WriteString("\n")

	switch viewType {
	case ViewTable:
		b.WriteString(r.renderTable(ds, state))
	case ViewCharts:
		b.WriteString(r.charts.RenderChart(BuildChartConfig(ds)))
	default:
		b.WriteString(r.renderCards(ds, state))
	}

	// pages have no meaning for an aggregate chart, so the footer is
	// omitted entirely rather than disabled
	if viewType != ViewCharts && state.PageCount > 1 {
		b.WriteString("\n")
		b.WriteString(pagerStyle.Render(fmt.Sprintf("page %d/%d  ‹[ ]›", state.Page, state.PageCount)))
	}
	return b.String()
}

func (r *Renderer) header(ds Dataset, state DatasetState) string {
	marker := "▸"
	if state.Expanded {
		marker = "▾"
	}
	title := fmt.Sprintf("%s %s", marker, ds.Key)
	line := datasetTitleStyle.Render(title) + " " +
		datasetMetaStyle.Render(fmt.Sprintf("(%s records)", FormatCount(len(ds.Records))))
	if state.Selected {
		line = selectedMarkStyle.Render("› ") + line
	} else {
		line = "  " + line
	}
	return line
}

// pageSlice computes the records of the current page.
func (r *Renderer) pageSlice(records []*Record, page int) []*Record {
	start := (page - 1) * r.pageSize
	if start >= len(records) || start < 0 {
		return nil
	}
	end := start + r.pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// renderCards renders one bordered card per record. The first four fields
// show inline; the rest stay behind a collapsed disclosure line.
func (r *Renderer) renderCards(ds Dataset, state DatasetState) string {
	slice := r.pageSlice(ds.Records, state.Page)
	if len(slice) == 0 {
		return emptyStateStyle.Render("no records on this page")
	}

	var cards []string
	for _, rec := range slice {
		cards = append(cards, cardBorderStyle.Render(r.renderCard(rec)))
	}
	return strings.Join(cards, "\n")
}

func (r *Renderer) renderCard(rec *Record) string {
	fields := rec.Fields()
	inline := fields
	if len(inline) > inlineCardFields {
		inline = inline[:inlineCardFields]
	}

	nameWidth := 0
	for _, name := range inline {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	var lines []string
	for _, name := range inline {
		value, _ := rec.Get(name)
		c := Classify(name, value)
		var rendered string
		if c.StatusLike {
			rendered = renderBadge(value, c.Icon)
		} else {
			rendered = FormatValue(value)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Icon.Color)).Render(c.Icon.Glyph),
			fieldNameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
			rendered))
	}
	if rest := len(fields) - len(inline); rest > 0 {
		lines = append(lines, disclosureStyle.Render(fmt.Sprintf("… %d more field(s)", rest)))
	}
	return strings.Join(lines, "\n")
}

// renderTable renders the page slice as a column-aligned table. Headers come
// from the first record of the slice; an empty slice renders an empty-state
// message instead of a headerless table.
func (r *Renderer) renderTable(ds Dataset, state DatasetState) string {
	slice := r.pageSlice(ds.Records, state.Page)
	if len(slice) == 0 {
		return emptyStateStyle.Render("no records to display")
	}

	headers := slice[0].Fields()
	rows := make([][]string, 0, len(slice))
	for _, rec := range slice {
		row := make([]string, len(headers))
		for i, name := range headers {
			value, present := rec.Get(name)
			if !present {
				row[i] = NotAvailable
				continue
			}
			if c := Classify(name, value); c.StatusLike {
				row[i] = renderBadge(value, c.Icon)
			} else {
				row[i] = FormatValue(value)
			}
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(tableHeaderStyle.Render(padCell(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(padCell(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// padCell pads by display width, so styled cells still line up.
func padCell(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// renderBadge renders a status-like value as a colored badge. Badge text
// bypasses FormatValue: upper-cased with separators converted to spaces.
func renderBadge(value any, icon Icon) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(icon.Color))
	return style.Render(fmt.Sprintf("%s %s", icon.Glyph, FormatBadge(value)))
}
