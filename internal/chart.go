package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChartConfig is what the dispatcher hands to a chart renderer. The chart
// strategy is an opaque boundary: the dispatcher fills in only the dataset
// key and total size, plus a value breakdown renderers may use or ignore.
type ChartConfig struct {
	Title  string       `json:"title"`
	Key    string       `json:"key"`
	Total  int          `json:"total"`
	Series []ChartPoint `json:"series,omitempty"`
}

// ChartPoint is one label/value pair of a chart series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartRenderer renders a chart config to terminal output. Chart internals
// are outside the presentation engine; BarRenderer is the bundled default.
type ChartRenderer interface {
	RenderChart(cfg ChartConfig) string
}

// BuildChartConfig prepares a config for a dataset. When the dataset has a
// status-like field, the series is the value breakdown of that field;
// otherwise the series is left empty and renderers fall back to the total.
func BuildChartConfig(ds Dataset) ChartConfig {
	cfg := ChartConfig{
		Title: fmt.Sprintf("%s (%s records)", ds.Key, FormatCount(len(ds.Records))),
		Key:   ds.Key,
		Total: len(ds.Records),
	}

	field, ok := statusField(ds)
	if !ok {
		return cfg
	}

	counts := make(map[string]int)
	var order []string
	for _, rec := range ds.Records {
		v, _ := rec.Get(field)
		label := FormatBadge(v)
		if label == "" {
			label = NotAvailable
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	for _, label := range order {
		cfg.Series = append(cfg.Series, ChartPoint{Label: label, Value: float64(counts[label])})
	}
	return cfg
}

// statusField finds the first status-like field of the first record.
func statusField(ds Dataset) (string, bool) {
	if len(ds.Records) == 0 {
		return "", false
	}
	first := ds.Records[0]
	for _, name := range first.Fields() {
		v, _ := first.Get(name)
		if Classify(name, v).StatusLike {
			return name, true
		}
	}
	return "", false
}

var (
	chartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	chartBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	chartLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// BarRenderer draws a horizontal unicode bar chart.
type BarRenderer struct {
	Width int // bar width in cells, defaults to 30
}

// RenderChart renders the config as labeled bars, or a one-line summary when
// no series is available.
func (r *BarRenderer) RenderChart(cfg ChartConfig) string {
	var b strings.Builder
	b.WriteString(chartTitleStyle.Render(cfg.Title))
	b.WriteString("\n")

	if len(cfg.Series) == 0 {
		b.WriteString(chartLabelStyle.Render(fmt.Sprintf("%s records in %s", FormatCount(cfg.Total), cfg.Key)))
		return b.String()
	}

	width := r.Width
	if width <= 0 {
		width = 30
	}
	maxVal := 0.0
	labelWidth := 0
	for _, p := range cfg.Series {
		if p.Value > maxVal {
			maxVal = p.Value
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}

	for _, p := range cfg.Series {
		cells := 0
		if maxVal > 0 {
			cells = int(p.Value / maxVal * float64(width))
		}
		if cells < 1 && p.Value > 0 {
			cells = 1
		}
		bar := strings.Repeat("█", cells)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			chartLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, p.Label)),
			chartBarStyle.Render(bar),
			FormatValue(p.Value)))
	}
	return strings.TrimRight(b.String(), "\n")
}
