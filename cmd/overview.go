package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"

	"github.com/spf13/cobra"
)

const (
	overviewDeadlines = 5
	overviewActivity  = 5
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Dashboard figures, deadlines and recent activity",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	cfg, result, err := loadAll()
	if err != nil {
		return err
	}
	now, err := resolveNow()
	if err != nil {
		return err
	}

	snap := result.Snapshot
	opts := dashboardOptions(cfg)
	stats := pipeline.ComputeSnapshotStats(snap, now, opts)

	fmt.Println()
	fmt.Println(cli.RenderTitle("DASHBOARD  " + cli.FormatDay(model.DateOf(now))))
	fmt.Println()

	if pipeline.RecordCount(snap) == 0 {
		fmt.Println("  The snapshot has no records.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderKeyValues("Overview", [][2]string{
		{"Projects", fmt.Sprintf("%d  (%d active, %d completed)",
			stats.TotalProjects, stats.ActiveProjects, stats.CompletedProjects)},
		{"Clients", cli.FormatNumber(int64(stats.TotalClients))},
		{"Total earnings", cli.Money(cli.FormatCurrency(stats.TotalEarnings))},
		{"This month", cli.Money(cli.FormatCurrency(stats.MonthlyEarnings))},
		{"Tasks due", fmt.Sprintf("%s  (within %d days)", countCell(stats.TasksDue), opts.Window())},
		{"Pending invoices", countCell(stats.PendingInvoices)},
		{"Unread", countCell(pipeline.UnreadCount(snap.Notifications))},
	}))
	fmt.Println()

	printStatusDistribution(snap.Projects)
	printUpcomingDeadlines(snap.Projects, now)
	return printRecentActivity(snap.Activities, now)
}

func printStatusDistribution(projects []model.Project) {
	if len(projects) == 0 {
		return
	}
	shares := pipeline.StatusDistribution(projects)
	maxCount := 0
	for _, s := range shares {
		maxCount = max(maxCount, s.Count)
	}

	fmt.Println("  " + cli.Muted("Project status"))
	for _, s := range shares {
		fmt.Println(cli.RenderHorizontalBar(s.Status, 10, float64(s.Count), float64(maxCount), 24,
			fmt.Sprintf("%d  %d%%", s.Count, s.SharePercent)))
	}
	fmt.Println()
}

func printUpcomingDeadlines(projects []model.Project, now time.Time) {
	upcoming := pipeline.UpcomingDeadlines(projects, overviewDeadlines)
	if len(upcoming) == 0 {
		return
	}
	rows := make([][]string, 0, len(upcoming))
	for _, p := range upcoming {
		rows = append(rows, []string{
			truncate(p.Name, 24),
			truncate(p.Client, 18),
			dueCell(p.Deadline, pipeline.IsOverdue(p.Deadline, p.Status, now)),
			cli.RenderProgressBar(p.Progress, 10),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Upcoming Deadlines",
		Headers: []string{"Project", "Client", "Deadline", "Progress"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printRecentActivity(activities []model.Activity, now time.Time) error {
	recent, err := query.Sort(query.Activities, activities, query.SortTimestamp)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}
	if len(recent) > overviewActivity {
		recent = recent[:overviewActivity]
	}

	fmt.Println("  " + cli.Muted("Recent activity"))
	for _, a := range recent {
		fmt.Printf("  %s  %-52s %s\n",
			cli.Badge(cli.ActivityColors, a.Type),
			truncate(a.Message, 52),
			cli.Muted(cli.FormatRelative(a.Timestamp, now)))
	}
	fmt.Println()
	return nil
}
