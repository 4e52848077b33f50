package cmd

import "github.com/theirongolddev/gigdash/internal/cli"

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}

// truncate shortens s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	return string(r[:limit-1]) + "…"
}
