package components

import (
	"strings"

	"github.com/theirongolddev/gigdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  string
}

// Tabs defines all available tabs. Letters are taken by view controls, so
// tabs are reached by number.
var Tabs = []Tab{
	{Name: "Overview", Key: "1"},
	{Name: "Projects", Key: "2"},
	{Name: "Clients", Key: "3"},
	{Name: "Invoices", Key: "4"},
	{Name: "Tasks", Key: "5"},
}

func tabLabel(tab Tab) string {
	return tab.Key + " " + tab.Name
}

// TabVisualWidth returns the rendered width of one tab including padding.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tabLabel(tab)) + 2
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tabLabel(tab))
		} else {
			parts[i] = inactiveStyle.Render(tabLabel(tab))
		}
	}

	row := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths RenderTabBar draws.
func TabAtX(x int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key string) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
