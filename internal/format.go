package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is the sentinel shown for null values.
const NotAvailable = "N/A"

var countPrinter = message.NewPrinter(language.English)

// FormatValue normalizes a raw record value into a display string.
//
// Rules: nil → NotAvailable; integral numbers render without decimals;
// non-integral numbers render to 2 decimal places; strings with an ISO date
// prefix render as a short localized date; everything else is coerced to a
// string unchanged.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return NotAvailable
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case string:
		if t, ok := parseISODate(v); ok {
			return t.Format("Jan 2, 2006")
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatBadge renders a status-like value as badge text: upper-cased with
// underscores and hyphens converted to spaces. Badge values bypass
// FormatValue entirely.
func FormatBadge(value any) string {
	text, ok := value.(string)
	if !ok {
		text = FormatValue(value)
	}
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.ToUpper(strings.TrimSpace(text))
}

// FormatCount renders a record count with locale-aware digit grouping, for
// dataset summary lines.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotAvailable
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// parseISODate recognizes strings with a YYYY-MM-DD prefix, with or without a
// trailing time component.
func parseISODate(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	head := s[:10]
	if head[4] != '-' || head[7] != '-' {
		return time.Time{}, false
	}
	for i, r := range head {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.Parse("2006-01-02", head)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
