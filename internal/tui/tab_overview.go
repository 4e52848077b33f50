package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/tui/components"
	"github.com/theirongolddev/gigdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const overviewListLimit = 5

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	stats := a.stats

	var b strings.Builder

	unread := pipeline.UnreadCount(a.snap.Notifications)
	b.WriteString(components.MetricCardRow([]components.Metric{
		{
			Label: "Projects",
			Value: cli.FormatNumber(int64(stats.TotalProjects)),
			Note:  fmt.Sprintf("%d active · %d done", stats.ActiveProjects, stats.CompletedProjects),
		},
		{
			Label: "Total Earnings",
			Value: cli.FormatCurrency(stats.TotalEarnings),
			Note:  cli.FormatCurrency(stats.MonthlyEarnings) + " this month",
		},
		{
			Label: "Tasks Due",
			Value: cli.FormatNumber(int64(stats.TasksDue)),
			Note:  fmt.Sprintf("within %d days", a.dashboardOptions().Window()),
		},
		{
			Label: "Pending Invoices",
			Value: cli.FormatNumber(int64(stats.PendingInvoices)),
			Note:  fmt.Sprintf("%d clients", stats.TotalClients),
		},
		{
			Label: "Notifications",
			Value: cli.FormatNumber(int64(unread)),
			Note:  "unread",
		},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Project Status", a.renderStatusDistribution(halves[0]), halves[0]),
		components.ContentCard("Upcoming Deadlines", a.renderUpcoming(halves[1]), halves[1]),
	}))
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Monthly Earnings", a.renderEarningsChart(halves[0], muted), halves[0]),
		components.ContentCard("Recent Activity", a.renderRecentActivity(halves[1], muted), halves[1]),
	}))

	return b.String()
}

func (a App) renderStatusDistribution(outerW int) string {
	t := theme.Active
	shares := pipeline.StatusDistribution(a.snap.Projects)
	if len(shares) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("No projects")
	}

	inner := components.CardInnerWidth(outerW)
	labelW := 10
	barW := max(inner-labelW-12, 6)

	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = components.ShareBar(s.Status, labelW, s.SharePercent,
			fmt.Sprintf("%d", s.Count), barW, t.Semantic(s.Status))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderUpcoming(outerW int) string {
	t := theme.Active
	upcoming := pipeline.UpcomingDeadlines(a.snap.Projects, overviewListLimit)
	if len(upcoming) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("Nothing due")
	}

	inner := components.CardInnerWidth(outerW)
	dateW := 12
	barW := 10
	nameW := max(inner-dateW-barW-7, 8)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	lateStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	lines := make([]string, len(upcoming))
	for i, p := range upcoming {
		ds := dateStyle
		if pipeline.IsOverdue(p.Deadline, p.Status, a.now) {
			ds = lateStyle
		}
		lines[i] = nameStyle.Render(fmt.Sprintf("%-*s", nameW, components.Truncate(p.Name, nameW))) +
			space +
			ds.Render(fmt.Sprintf("%-*s", dateW, cli.FormatDay(p.Deadline))) +
			space +
			components.ProgressBar(p.Progress, barW)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderEarningsChart(outerW int, muted lipgloss.Style) string {
	months := pipeline.MonthlyEarnings(a.snap.Invoices)
	if len(months) == 0 {
		return muted.Render("No paid invoices")
	}

	values := make([]float64, len(months))
	labels := make([]string, len(months))
	for i, m := range months {
		values[i] = m.Earnings.InexactFloat64()
		labels[i] = m.Month.Format("Jan")
	}
	return components.BarChart(values, labels, theme.Active.Green, components.CardInnerWidth(outerW), 6)
}

func (a App) renderRecentActivity(outerW int, muted lipgloss.Style) string {
	t := theme.Active
	recent, err := query.Sort(query.Activities, a.snap.Activities, query.SortTimestamp)
	if err != nil {
		return muted.Render(err.Error())
	}
	if len(recent) == 0 {
		return muted.Render("No activity")
	}
	if len(recent) > overviewListLimit {
		recent = recent[:overviewListLimit]
	}

	inner := components.CardInnerWidth(outerW)
	whenW := 14
	msgW := max(inner-whenW-10, 10)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	lines := make([]string, len(recent))
	for i, act := range recent {
		typeStyle := lipgloss.NewStyle().Foreground(t.Semantic(string(act.Type))).Background(t.Surface)
		lines[i] = typeStyle.Render(fmt.Sprintf("%-8s", act.Type)) +
			space +
			msgStyle.Render(fmt.Sprintf("%-*s", msgW, components.Truncate(act.Message, msgW))) +
			space +
			muted.Render(cli.FormatRelative(act.Timestamp, a.now))
	}
	return strings.Join(lines, "\n")
}
