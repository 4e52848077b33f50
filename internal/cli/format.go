// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

// DisplayDateLayout renders a calendar date as "Jan 15, 2025".
const DisplayDateLayout = "Jan 2, 2006"

// FormatCurrency renders a USD amount in whole dollars with thousands
// separators, rounding half away from zero.
// e.g., 8500 -> "$8,500", -1200.5 -> "-$1,201"
func FormatCurrency(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-$" + humanize.Comma(-whole)
	}
	return "$" + humanize.Comma(whole)
}

// FormatDate parses a YYYY-MM-DD string and renders it for display.
// e.g., "2025-01-15" -> "Jan 15, 2025"
func FormatDate(s string) (string, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDay(d), nil
}

// FormatDay renders a Date for display. The zero Date renders as "-".
func FormatDay(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(DisplayDateLayout)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent renders an integer percentage, or "n/a" when there was no
// data to compute it from.
func FormatPercent(pct int, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatRelative renders t relative to now, e.g. "3 hours ago".
func FormatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatMonth renders a month bucket as "Dec 2024".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}
