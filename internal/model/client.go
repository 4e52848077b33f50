package model

import "github.com/shopspring/decimal"

// ClientStatus is whether a client is currently engaged.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// AllClientStatuses lists client statuses in display order.
var AllClientStatuses = []ClientStatus{ClientActive, ClientInactive}

// Valid reports whether s is a known client status.
func (s ClientStatus) Valid() bool { return contains(AllClientStatuses, s) }

// Client is a customer. TotalProjects and TotalPaid are maintained outside
// gigdash and are never recomputed from invoices or projects.
type Client struct {
	ID            string          `json:"id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Company       string          `json:"company"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone,omitempty"`
	Status        ClientStatus    `json:"status" validate:"required,oneof=active inactive"`
	TotalProjects int             `json:"totalProjects" validate:"min=0"`
	TotalPaid     decimal.Decimal `json:"totalPaid" validate:"gte=0"`
	JoinDate      Date            `json:"joinDate" validate:"required"`
	LastContact   Date            `json:"lastContact"`
}
