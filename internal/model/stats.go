package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats holds the top-level figures on the overview page. Every
// field is a pure function of the project, client, invoice and task
// collections at the moment of computation.
type DashboardStats struct {
	TotalProjects     int             `json:"totalProjects"`
	ActiveProjects    int             `json:"activeProjects"`
	CompletedProjects int             `json:"completedProjects"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	MonthlyEarnings   decimal.Decimal `json:"monthlyEarnings"`
	TasksDue          int             `json:"tasksDue"`
	TotalClients      int             `json:"totalClients"`
	PendingInvoices   int             `json:"pendingInvoices"`
}

// ProjectSummary is the footer of the projects page.
type ProjectSummary struct {
	Total             int             `json:"total"`
	ActiveCount       int             `json:"activeCount"`
	CompletedCount    int             `json:"completedCount"`
	PendingCount      int             `json:"pendingCount"`
	OverdueCount      int             `json:"overdueCount"`  // stored status
	PastDeadlineCount int             `json:"pastDeadline"`  // derived
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	AverageProgress   int             `json:"averageProgress"`
	CompletionPercent int             `json:"completionPercent"`
}

// Empty reports whether the summarized collection had no records.
func (s ProjectSummary) Empty() bool { return s.Total == 0 }

// ClientSummary is the footer of the clients page.
type ClientSummary struct {
	Total         int             `json:"total"`
	ActiveCount   int             `json:"activeCount"`
	InactiveCount int             `json:"inactiveCount"`
	TotalProjects int             `json:"totalProjects"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
}

// Empty reports whether the summarized collection had no records.
func (s ClientSummary) Empty() bool { return s.Total == 0 }

// InvoiceSummary is the footer of the invoices page.
type InvoiceSummary struct {
	Total             int             `json:"total"`
	PaidCount         int             `json:"paidCount"`
	PendingCount      int             `json:"pendingCount"`
	OverdueCount      int             `json:"overdueCount"` // stored status
	DraftCount        int             `json:"draftCount"`
	PastDueCount      int             `json:"pastDueCount"` // derived
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	PaidPercent       int             `json:"paidPercent"`
}

// Empty reports whether the summarized collection had no records.
func (s InvoiceSummary) Empty() bool { return s.Total == 0 }

// TaskSummary is the footer of the tasks page.
type TaskSummary struct {
	Total             int `json:"total"`
	TodoCount         int `json:"todoCount"`
	InProgressCount   int `json:"inProgressCount"`
	CompletedCount    int `json:"completedCount"`
	HighCount         int `json:"highCount"`
	MediumCount       int `json:"mediumCount"`
	LowCount          int `json:"lowCount"`
	OverdueCount      int `json:"overdueCount"` // derived
	CompletionPercent int `json:"completionPercent"`
}

// Empty reports whether the summarized collection had no records.
func (s TaskSummary) Empty() bool { return s.Total == 0 }

// NotificationSummary backs the notification bell.
type NotificationSummary struct {
	Total  int                      `json:"total"`
	Unread int                      `json:"unread"`
	ByType map[NotificationType]int `json:"byType"`
}

// Empty reports whether the summarized collection had no records.
func (s NotificationSummary) Empty() bool { return s.Total == 0 }

// ActivitySummary counts log entries per type.
type ActivitySummary struct {
	Total  int                  `json:"total"`
	ByType map[ActivityType]int `json:"byType"`
}

// Empty reports whether the summarized collection had no records.
func (s ActivitySummary) Empty() bool { return s.Total == 0 }

// StatusShare is one slice of a status distribution.
type StatusShare struct {
	Status       string `json:"status"`
	Count        int    `json:"count"`
	SharePercent int    `json:"sharePercent"`
}

// ClientShare is one client's slice of lifetime revenue.
type ClientShare struct {
	Company      string          `json:"company"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	SharePercent int             `json:"sharePercent"`
}

// MonthlyEarnings holds paid invoice totals for one calendar month.
type MonthlyEarnings struct {
	Month    time.Time       `json:"month"`
	Earnings decimal.Decimal `json:"earnings"`
	Invoices int             `json:"invoices"`
}

// InvoiceDiscrepancy flags an invoice whose advisory arithmetic does not hold.
type InvoiceDiscrepancy struct {
	InvoiceID  string          `json:"invoiceId"`
	ItemID     string          `json:"itemId,omitempty"`
	Stated     decimal.Decimal `json:"stated"`
	Calculated decimal.Decimal `json:"calculated"`
}
