package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/tui/components"
	"github.com/theirongolddev/gigdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listKinds maps tabs 1..4 to the collection they page through.
var listKinds = [...]model.Kind{model.KindProject, model.KindClient, model.KindInvoice, model.KindTask}

// listState is the view state of one record tab. statusIdx and priorityIdx
// index into "all" followed by the kind's values; sortIdx indexes into the
// kind's sort keys, with -1 meaning snapshot order.
type listState struct {
	kind        model.Kind
	info        query.Info
	search      string
	statusIdx   int
	priorityIdx int
	sortIdx     int

	searching bool
	input     textinput.Model
	table     table.Model

	result *pipeline.ViewResult
	err    error
}

func newListState(kind model.Kind, defaultSort string) listState {
	info, err := query.Describe(kind)
	ls := listState{kind: kind, info: info, err: err, sortIdx: -1}
	for i, k := range info.SortKeys {
		if string(k) == defaultSort {
			ls.sortIdx = i
		}
	}
	ls.table = table.New(table.WithFocused(true))
	return ls
}

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 64
	ti.Width = 30
	ti.SetValue(value)
	return ti
}

func (ls listState) status() string {
	if ls.statusIdx == 0 {
		return model.FilterAll
	}
	return ls.info.Statuses[ls.statusIdx-1]
}

func (ls listState) priority() string {
	if ls.priorityIdx == 0 {
		return model.FilterAll
	}
	return ls.info.Priorities[ls.priorityIdx-1]
}

func (ls listState) sortKey() query.SortKey {
	if ls.sortIdx < 0 {
		return ""
	}
	return ls.info.SortKeys[ls.sortIdx]
}

func (ls listState) request() pipeline.ViewRequest {
	return pipeline.ViewRequest{
		Kind: ls.kind,
		Filter: query.Filter{
			Search:   ls.search,
			Status:   ls.status(),
			Priority: ls.priority(),
		},
		Sort: ls.sortKey(),
	}
}

// cycleStatus advances through all, then each status value.
func (ls *listState) cycleStatus() {
	ls.statusIdx = (ls.statusIdx + 1) % (len(ls.info.Statuses) + 1)
}

func (ls *listState) cyclePriority() {
	if len(ls.info.Priorities) == 0 {
		return
	}
	ls.priorityIdx = (ls.priorityIdx + 1) % (len(ls.info.Priorities) + 1)
}

// cycleSort advances through each sort key, then snapshot order.
func (ls *listState) cycleSort() {
	ls.sortIdx++
	if ls.sortIdx >= len(ls.info.SortKeys) {
		ls.sortIdx = -1
	}
}

// refresh reruns the view and rebuilds the table. Every filter, sort or
// search change goes through here so the footer always matches the rows.
func (ls *listState) refresh(snap *model.Snapshot, now time.Time, width, height int) {
	ls.result, ls.err = pipeline.RunView(snap, ls.request(), now)
	if ls.err != nil {
		ls.table.SetRows(nil)
		return
	}

	cols, rows := tableFor(ls.result, now, width)
	ls.table.SetRows(nil)
	ls.table.SetColumns(cols)
	ls.table.SetRows(rows)
	ls.table.SetWidth(width)
	ls.table.SetHeight(max(height, 3))
	ls.table.SetStyles(tableStyles())
	if c := ls.table.Cursor(); c >= len(rows) || c < 0 {
		ls.table.SetCursor(max(len(rows)-1, 0))
	}
}

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true)
	return s
}

// fitColumns gives the first column whatever width the others leave.
func fitColumns(cols []table.Column, width int) []table.Column {
	used := 0
	for _, c := range cols[1:] {
		used += c.Width + 2 // cell padding
	}
	cols[0].Width = max(width-used-2, 12)
	return cols
}

func tableFor(res *pipeline.ViewResult, now time.Time, width int) ([]table.Column, []table.Row) {
	switch items := res.Items.(type) {
	case []model.Project:
		cols := fitColumns([]table.Column{
			{Title: "Project"},
			{Title: "Client", Width: 16},
			{Title: "Status", Width: 10},
			{Title: "Deadline", Width: 12},
			{Title: "Progress", Width: 8},
			{Title: "Budget", Width: 10},
		}, width)
		rows := make([]table.Row, len(items))
		for i, p := range items {
			deadline := cli.FormatDay(p.Deadline)
			if pipeline.IsOverdue(p.Deadline, p.Status, now) {
				deadline += " !"
			}
			rows[i] = table.Row{
				p.Name, p.Client, string(p.Status), deadline,
				strconv.Itoa(p.Progress) + "%", cli.FormatCurrency(p.Budget),
			}
		}
		return cols, rows

	case []model.Client:
		cols := fitColumns([]table.Column{
			{Title: "Client"},
			{Title: "Company", Width: 18},
			{Title: "Status", Width: 8},
			{Title: "Projects", Width: 8},
			{Title: "Total Paid", Width: 10},
			{Title: "Last Contact", Width: 12},
		}, width)
		rows := make([]table.Row, len(items))
		for i, c := range items {
			rows[i] = table.Row{
				c.Name, c.Company, string(c.Status), strconv.Itoa(c.TotalProjects),
				cli.FormatCurrency(c.TotalPaid), cli.FormatDay(c.LastContact),
			}
		}
		return cols, rows

	case []model.Invoice:
		cols := fitColumns([]table.Column{
			{Title: "Project"},
			{Title: "Invoice", Width: 8},
			{Title: "Client", Width: 16},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 8},
			{Title: "Due", Width: 12},
		}, width)
		rows := make([]table.Row, len(items))
		for i, inv := range items {
			due := cli.FormatDay(inv.DueDate)
			if pipeline.IsPastDue(inv, now) {
				due += " !"
			}
			rows[i] = table.Row{
				inv.ProjectName, inv.ID, inv.ClientName,
				cli.FormatCurrency(inv.Amount), string(inv.Status), due,
			}
		}
		return cols, rows

	case []model.Task:
		cols := fitColumns([]table.Column{
			{Title: "Task"},
			{Title: "Project", Width: 18},
			{Title: "Priority", Width: 8},
			{Title: "Status", Width: 11},
			{Title: "Due", Width: 12},
		}, width)
		rows := make([]table.Row, len(items))
		for i, t := range items {
			due := cli.FormatDay(t.DueDate)
			if pipeline.IsOverdue(t.DueDate, t.Status, now) {
				due += " !"
			}
			rows[i] = table.Row{t.Title, t.ProjectName, string(t.Priority), string(t.Status), due}
		}
		return cols, rows
	}
	return []table.Column{{Title: "Records", Width: width}}, nil
}

// summaryLine renders the footer for the records currently shown.
func summaryLine(res *pipeline.ViewResult) string {
	if res == nil {
		return ""
	}
	switch s := res.Summary.(type) {
	case model.ProjectSummary:
		if s.Empty() {
			return "No projects match"
		}
		pct, ok := pipeline.Percent(s.CompletedCount, s.Total)
		return fmt.Sprintf("%d projects · %d active · %d completed · %d past deadline · budget %s · avg progress %d%% · %s complete",
			s.Total, s.ActiveCount, s.CompletedCount, s.PastDeadlineCount,
			cli.FormatCurrency(s.TotalBudget), s.AverageProgress, cli.FormatPercent(pct, ok))
	case model.ClientSummary:
		if s.Empty() {
			return "No clients match"
		}
		return fmt.Sprintf("%d clients · %d active · %d inactive · %d projects · paid %s",
			s.Total, s.ActiveCount, s.InactiveCount, s.TotalProjects, cli.FormatCurrency(s.TotalPaid))
	case model.InvoiceSummary:
		if s.Empty() {
			return "No invoices match"
		}
		pct, ok := pipeline.PercentOf(s.PaidAmount, s.TotalAmount)
		return fmt.Sprintf("%d invoices · total %s · paid %s (%s) · outstanding %s · %d past due",
			s.Total, cli.FormatCurrency(s.TotalAmount), cli.FormatCurrency(s.PaidAmount),
			cli.FormatPercent(pct, ok), cli.FormatCurrency(s.OutstandingAmount), s.PastDueCount)
	case model.TaskSummary:
		if s.Empty() {
			return "No tasks match"
		}
		return fmt.Sprintf("%d tasks · %d todo · %d in progress · %d completed · %d high priority · %d overdue",
			s.Total, s.TodoCount, s.InProgressCount, s.CompletedCount, s.HighCount, s.OverdueCount)
	}
	return fmt.Sprintf("%d records", res.Count)
}

// updateList handles keys on a record tab. It reports whether the key was
// consumed.
func (a App) updateList(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	idx := a.activeTab - 1
	ls := a.lists[idx]

	if ls.searching {
		switch msg.String() {
		case "enter":
			ls.searching = false
			ls.input.Blur()
		case "esc":
			ls.searching = false
			ls.search = ""
			ls.input.Blur()
		default:
			var cmd tea.Cmd
			ls.input, cmd = ls.input.Update(msg)
			ls.search = strings.TrimSpace(ls.input.Value())
			a.lists[idx] = ls
			a.refreshList(idx)
			return a, cmd, true
		}
		a.lists[idx] = ls
		a.refreshList(idx)
		return a, nil, true
	}

	switch msg.String() {
	case "/":
		ls.searching = true
		ls.input = newSearchInput(ls.search)
		cmd := ls.input.Focus()
		a.lists[idx] = ls
		return a, cmd, true
	case "esc":
		if ls.search == "" {
			return a, nil, false
		}
		ls.search = ""
	case "s":
		ls.cycleStatus()
	case "p":
		if len(ls.info.Priorities) == 0 {
			return a, nil, true
		}
		ls.cyclePriority()
	case "o":
		ls.cycleSort()
	case "c":
		ls.search, ls.statusIdx, ls.priorityIdx = "", 0, 0
	case "up", "down", "j", "k", "pgup", "pgdown", "home", "end", "g", "G":
		var cmd tea.Cmd
		ls.table, cmd = ls.table.Update(msg)
		a.lists[idx] = ls
		return a, cmd, true
	default:
		return a, nil, false
	}

	a.lists[idx] = ls
	a.refreshList(idx)
	return a, nil, true
}

func (a *App) refreshList(idx int) {
	a.lists[idx].refresh(a.snap, a.now, a.contentWidth()-4, a.tableHeight())
}

func (a App) renderListTab(cw int) string {
	t := theme.Active
	ls := a.lists[a.activeTab-1]

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	footStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	sortLabel := string(ls.sortKey())
	if sortLabel == "" {
		sortLabel = "snapshot order"
	}
	pills := pillStyle.Render(ls.info.StatusLabel+" ") + valueStyle.Render(ls.status())
	if len(ls.info.Priorities) > 0 {
		pills += pillStyle.Render("  priority ") + valueStyle.Render(ls.priority())
	}
	pills += pillStyle.Render("  sort ") + valueStyle.Render(sortLabel)

	var search string
	switch {
	case ls.searching:
		search = ls.input.View()
	case ls.search != "":
		search = pillStyle.Render("search ") + valueStyle.Render(ls.search)
	}

	var b strings.Builder
	b.WriteString(pills)
	if search != "" {
		b.WriteString(pillStyle.Render("   "))
		b.WriteString(search)
	}
	b.WriteString("\n\n")

	if ls.err != nil {
		b.WriteString(errStyle.Render(ls.err.Error()))
	} else {
		b.WriteString(ls.table.View())
		b.WriteString("\n\n")
		b.WriteString(footStyle.Render(summaryLine(ls.result)))
	}

	title := fmt.Sprintf("%s [%d]", components.Tabs[a.activeTab].Name, resultCount(ls.result))
	return components.ContentCard(title, b.String(), cw)
}

func resultCount(res *pipeline.ViewResult) int {
	if res == nil {
		return 0
	}
	return res.Count
}
