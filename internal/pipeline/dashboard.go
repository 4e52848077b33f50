package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

// DefaultDueSoonDays is the look-ahead window for DashboardStats.TasksDue.
const DefaultDueSoonDays = 7

// DashboardOptions tunes the cross-collection figures.
type DashboardOptions struct {
	// DueSoonDays counts open tasks due within this many days of now
	// (overdue tasks included). Zero or less means DefaultDueSoonDays.
	DueSoonDays int
}

// Window returns the effective due-soon window in days.
func (o DashboardOptions) Window() int {
	if o.DueSoonDays <= 0 {
		return DefaultDueSoonDays
	}
	return o.DueSoonDays
}

// ComputeDashboardStats derives the overview figures. Each collection is
// folded on its own; foreign keys are display strings and are never joined.
func ComputeDashboardStats(
	projects []model.Project,
	clients []model.Client,
	invoices []model.Invoice,
	tasks []model.Task,
	now time.Time,
	opts DashboardOptions,
) model.DashboardStats {
	stats := model.DashboardStats{
		TotalProjects:   len(projects),
		TotalClients:    len(clients),
		TotalEarnings:   decimal.Zero,
		MonthlyEarnings: decimal.Zero,
	}

	for _, p := range projects {
		switch p.Status {
		case model.ProjectActive:
			stats.ActiveProjects++
		case model.ProjectCompleted:
			stats.CompletedProjects++
		}
	}

	for _, c := range clients {
		stats.TotalEarnings = stats.TotalEarnings.Add(c.TotalPaid)
	}

	year, month, _ := now.Date()
	for _, inv := range invoices {
		if inv.Status.Outstanding() {
			stats.PendingInvoices++
		}
		if inv.Status == model.InvoicePaid && inv.IssueDate.Year() == year && inv.IssueDate.Month() == month {
			stats.MonthlyEarnings = stats.MonthlyEarnings.Add(inv.Amount)
		}
	}

	horizon := model.DateOf(now).AddDate(0, 0, opts.Window())
	for _, t := range tasks {
		if t.Status != model.TaskCompleted && !t.DueDate.After(horizon) {
			stats.TasksDue++
		}
	}

	return stats
}

// ComputeSnapshotStats is ComputeDashboardStats over a whole snapshot.
func ComputeSnapshotStats(snap *model.Snapshot, now time.Time, opts DashboardOptions) model.DashboardStats {
	return ComputeDashboardStats(snap.Projects, snap.Clients, snap.Invoices, snap.Tasks, now, opts)
}
