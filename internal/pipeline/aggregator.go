// Package pipeline folds record collections into summaries and derived
// figures. Every function is a pure single pass over the slice it is given;
// callers pass "now" explicitly so results are reproducible.
package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

// SummarizeProjects computes the projects page footer.
func SummarizeProjects(projects []model.Project, now time.Time) model.ProjectSummary {
	s := model.ProjectSummary{TotalBudget: decimal.Zero}
	progress := 0

	for _, p := range projects {
		s.Total++
		switch p.Status {
		case model.ProjectActive:
			s.ActiveCount++
		case model.ProjectCompleted:
			s.CompletedCount++
		case model.ProjectPending:
			s.PendingCount++
		case model.ProjectOverdue:
			s.OverdueCount++
		}
		if IsOverdue(p.Deadline, p.Status, now) {
			s.PastDeadlineCount++
		}
		s.TotalBudget = s.TotalBudget.Add(p.Budget)
		progress += p.Progress
	}

	s.AverageProgress, _ = Percent(progress, s.Total*100)
	s.CompletionPercent, _ = Percent(s.CompletedCount, s.Total)
	return s
}

// SummarizeClients computes the clients page footer. TotalProjects and
// TotalPaid are sums of the externally maintained per-client figures.
func SummarizeClients(clients []model.Client) model.ClientSummary {
	s := model.ClientSummary{TotalPaid: decimal.Zero}
	for _, c := range clients {
		s.Total++
		switch c.Status {
		case model.ClientActive:
			s.ActiveCount++
		case model.ClientInactive:
			s.InactiveCount++
		}
		s.TotalProjects += c.TotalProjects
		s.TotalPaid = s.TotalPaid.Add(c.TotalPaid)
	}
	return s
}

// SummarizeInvoices computes the invoices page footer.
func SummarizeInvoices(invoices []model.Invoice, now time.Time) model.InvoiceSummary {
	s := model.InvoiceSummary{
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	for _, inv := range invoices {
		s.Total++
		s.TotalAmount = s.TotalAmount.Add(inv.Amount)
		switch inv.Status {
		case model.InvoicePaid:
			s.PaidCount++
			s.PaidAmount = s.PaidAmount.Add(inv.Amount)
		case model.InvoicePending:
			s.PendingCount++
		case model.InvoiceOverdue:
			s.OverdueCount++
		case model.InvoiceDraft:
			s.DraftCount++
		}
		if inv.Status.Outstanding() {
			s.OutstandingAmount = s.OutstandingAmount.Add(inv.Amount)
		}
		if IsPastDue(inv, now) {
			s.PastDueCount++
		}
	}

	s.PaidPercent, _ = PercentOf(s.PaidAmount, s.TotalAmount)
	return s
}

// SummarizeTasks computes the tasks page footer.
func SummarizeTasks(tasks []model.Task, now time.Time) model.TaskSummary {
	var s model.TaskSummary
	for _, t := range tasks {
		s.Total++
		switch t.Status {
		case model.TaskTodo:
			s.TodoCount++
		case model.TaskInProgress:
			s.InProgressCount++
		case model.TaskCompleted:
			s.CompletedCount++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.HighCount++
		case model.PriorityMedium:
			s.MediumCount++
		case model.PriorityLow:
			s.LowCount++
		}
		if IsOverdue(t.DueDate, t.Status, now) {
			s.OverdueCount++
		}
	}
	s.CompletionPercent, _ = Percent(s.CompletedCount, s.Total)
	return s
}

// SummarizeNotifications backs the notification bell badge.
func SummarizeNotifications(ns []model.Notification) model.NotificationSummary {
	s := model.NotificationSummary{ByType: make(map[model.NotificationType]int)}
	for _, n := range ns {
		s.Total++
		s.ByType[n.Type]++
	}
	s.Unread = UnreadCount(ns)
	return s
}

// SummarizeActivities counts activity log entries per type.
func SummarizeActivities(as []model.Activity) model.ActivitySummary {
	s := model.ActivitySummary{ByType: make(map[model.ActivityType]int)}
	for _, a := range as {
		s.Total++
		s.ByType[a.Type]++
	}
	return s
}
