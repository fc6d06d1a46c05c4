package internal

import "strings"

// Icon describes the visual treatment for a classified field or value.
type Icon struct {
	Name  string
	Glyph string
	Color string // lipgloss ANSI-256 color
}

// Classification is the result of classifying a field for display.
type Classification struct {
	Icon       Icon
	StatusLike bool
}

var (
	iconSuccess    = Icon{Name: "success", Glyph: "✔", Color: "42"}
	iconInProgress = Icon{Name: "in-progress", Glyph: "◐", Color: "214"}
	iconAlert      = Icon{Name: "alert", Glyph: "▲", Color: "196"}
	iconActivity   = Icon{Name: "activity", Glyph: "●", Color: "39"}
	iconTag        = Icon{Name: "tag", Glyph: "⌗", Color: "135"}
	iconCurrency   = Icon{Name: "currency", Glyph: "$", Color: "42"}
	iconCalendar   = Icon{Name: "calendar", Glyph: "◷", Color: "243"}
	iconQuantity   = Icon{Name: "quantity", Glyph: "#", Color: "39"}
	iconLocation   = Icon{Name: "location", Glyph: "⌖", Color: "214"}
	iconIdentity   = Icon{Name: "identifier", Glyph: "№", Color: "240"}
	iconPerson     = Icon{Name: "person", Glyph: "👤", Color: "39"}
	iconInfo       = Icon{Name: "info", Glyph: "ℹ", Color: "243"}
)

// statusValueRules map lower-cased status values to icons. Ordered: the first
// matching substring wins.
var statusValueRules = []struct {
	token string
	icon  Icon
}{
	{"completed", iconSuccess},
	{"done", iconSuccess},
	{"resolved", iconSuccess},
	{"active", iconSuccess},
	{"paid", iconSuccess},
	{"progress", iconInProgress},
	{"pending", iconInProgress},
	{"processing", iconInProgress},
	{"scheduled", iconInProgress},
	{"high", iconAlert},
	{"urgent", iconAlert},
	{"critical", iconAlert},
	{"overdue", iconAlert},
	{"failed", iconAlert},
	{"cancelled", iconAlert},
}

// fieldNameRules map lower-cased field-name substrings to icons. Ordered: the
// first matching entry wins, so more specific tokens sit above generic ones.
var fieldNameRules = []struct {
	token string
	icon  Icon
}{
	{"sku", iconTag},
	{"part", iconTag},
	{"model", iconTag},
	{"serial", iconTag},
	{"cost", iconCurrency},
	{"price", iconCurrency},
	{"amount", iconCurrency},
	{"total", iconCurrency},
	{"revenue", iconCurrency},
	{"budget", iconCurrency},
	{"date", iconCalendar},
	{"time", iconCalendar},
	{"created", iconCalendar},
	{"updated", iconCalendar},
	{"due", iconCalendar},
	{"quantity", iconQuantity},
	{"qty", iconQuantity},
	{"count", iconQuantity},
	{"stock", iconQuantity},
	{"units", iconQuantity},
	{"location", iconLocation},
	{"warehouse", iconLocation},
	{"site", iconLocation},
	{"region", iconLocation},
	{"assignee", iconPerson},
	{"technician", iconPerson},
	{"customer", iconPerson},
	{"vendor", iconPerson},
	{"supplier", iconPerson},
	{"id", iconIdentity},
	{"number", iconIdentity},
	{"code", iconIdentity},
}

// Classify maps a field name (and, for status detection, its value) to a
// display treatment. It is total: every input yields an icon.
//
// Status/priority fields take precedence over the name table, so a field like
// "warehouse_status" classifies as status-like, not as a location.
func Classify(fieldName string, value any) Classification {
	name := strings.ToLower(fieldName)

	if strings.Contains(name, "status") || strings.Contains(name, "priority") {
		return Classification{Icon: statusIcon(value), StatusLike: true}
	}

	for _, rule := range fieldNameRules {
		if strings.Contains(name, rule.token) {
			return Classification{Icon: rule.icon}
		}
	}
	return Classification{Icon: iconInfo}
}

func statusIcon(value any) Icon {
	text, _ := value.(string)
	text = strings.ToLower(text)
	for _, rule := range statusValueRules {
		if strings.Contains(text, rule.token) {
			return rule.icon
		}
	}
	return iconActivity
}
