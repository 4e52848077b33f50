// Package tui provides the interactive Bubble Tea dashboard for gigdash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/tui/components"
	"github.com/theirongolddev/gigdash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a new App.
type Options struct {
	Snapshot *model.Snapshot
	Origin   string
	Now      time.Time
	Config   config.Config
	// FirstRun shows the setup wizard before the dashboard.
	FirstRun bool
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	snap   *model.Snapshot
	origin string
	now    time.Time
	cfg    config.Config
	stats  model.DashboardStats

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state for tabs 1..4
	lists [len(listKinds)]listState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared by App copies; the form writes through it
	setupErr  error
	needSetup bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5

	// Lines the list card spends on border, pills and footer.
	listChrome = 9
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	vals := SetupValuesFrom(opts.Config)
	a := App{
		snap:      opts.Snapshot,
		origin:    opts.Origin,
		now:       opts.Now,
		cfg:       opts.Config,
		needSetup: opts.FirstRun,
		setupVals: &vals,
	}
	for i, kind := range listKinds {
		a.lists[i] = newListState(kind, opts.Config.Views.DefaultSort(kind))
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (a App) dashboardOptions() pipeline.DashboardOptions {
	return pipeline.DashboardOptions{DueSoonDays: a.cfg.General.DueSoonDays}
}

// recompute refreshes every derived figure after a size or config change.
func (a *App) recompute() {
	a.stats = pipeline.ComputeSnapshotStats(a.snap, a.now, a.dashboardOptions())
	for i := range a.lists {
		a.refreshList(i)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	if cw < minTerminalWidth {
		cw = minTerminalWidth
	}
	return cw
}

func (a App) contentHeight() int {
	// tab bar + status bar
	return max(a.height-2, minContentHeight)
}

func (a App) tableHeight() int {
	return max(a.contentHeight()-listChrome, 3)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.recompute()
		if a.needSetup && a.setupForm == nil {
			a.setupForm = NewSetupForm(a.setupVals).WithWidth(msg.Width).WithHeight(msg.Height)
			return a, a.setupForm.Init()
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.needSetup {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := components.TabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// A focused search box takes every key, including q and digits.
		if a.activeTab > 0 && a.lists[a.activeTab-1].searching {
			next, cmd, _ := a.updateList(msg)
			return next, cmd
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab > 0 {
			if next, cmd, ok := a.updateList(msg); ok {
				return next, cmd
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		if idx := components.TabIdxByKey(key); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := a.cfg
		if err := a.setupVals.Apply(&cfg); err != nil {
			a.setupErr = err
		} else {
			a.setupErr = config.Save(cfg)
			a.cfg = cfg
			theme.SetActive(cfg.Appearance.Theme)
		}
		a.needSetup = false
		a.setupForm = nil
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  gigdash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1-5", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move through rows"},
		}},
		{"Views", [][2]string{
			{"/", "Search (Enter keeps, Esc clears)"},
			{"s", "Cycle status or type filter"},
			{"p", "Cycle priority filter (tasks)"},
			{"o", "Cycle sort order"},
			{"c", "Clear filters"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[1-5]tabs  [?]help  [q]uit"
	if a.activeTab > 0 {
		hints = "[/]search  [s]tatus  [o]rder  [?]help  [q]uit"
	}
	right := fmt.Sprintf("%s · %s", a.origin, a.now.Format("Jan 2, 2006"))
	if a.setupErr != nil {
		right = "config not saved: " + a.setupErr.Error()
	}
	statusBar := components.RenderStatusBar(w, hints, right)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	if a.activeTab == 0 {
		content = a.renderOverviewTab(cw)
	} else {
		content = a.renderListTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
