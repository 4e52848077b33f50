package model

import "github.com/shopspring/decimal"

// InvoiceStatus is the stored billing state of an invoice. It is independent
// of whether the due date has passed.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceDraft   InvoiceStatus = "draft"
)

// AllInvoiceStatuses lists invoice statuses in display order.
var AllInvoiceStatuses = []InvoiceStatus{
	InvoicePaid, InvoicePending, InvoiceOverdue, InvoiceDraft,
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool { return contains(AllInvoiceStatuses, s) }

// Outstanding reports whether money is still owed on an invoice in this state.
func (s InvoiceStatus) Outstanding() bool {
	return s == InvoicePending || s == InvoiceOverdue
}

// Invoice is a bill sent to a client. Amount is expected, not guaranteed, to
// equal the sum of its item amounts.
type Invoice struct {
	ID          string          `json:"id" validate:"required"`
	ClientID    string          `json:"clientId" validate:"required"`
	ClientName  string          `json:"clientName" validate:"required"`
	ProjectID   string          `json:"projectId"`
	ProjectName string          `json:"projectName"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	Status      InvoiceStatus   `json:"status" validate:"required,oneof=paid pending overdue draft"`
	IssueDate   Date            `json:"issueDate" validate:"required"`
	DueDate     Date            `json:"dueDate" validate:"required"`
	Description string          `json:"description,omitempty"`
	Items       []InvoiceItem   `json:"items" validate:"dive"`
}

// InvoiceItem is one billed line. Amount is expected to be Quantity x Rate.
type InvoiceItem struct {
	ID          string          `json:"id" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}
