package model

import "github.com/shopspring/decimal"

// ProjectStatus is the stored lifecycle state of a project. It is set
// externally; nothing in gigdash moves a project between states.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPending   ProjectStatus = "pending"
	ProjectOverdue   ProjectStatus = "overdue"
)

// AllProjectStatuses lists project statuses in display order.
var AllProjectStatuses = []ProjectStatus{
	ProjectActive, ProjectCompleted, ProjectPending, ProjectOverdue,
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool { return contains(AllProjectStatuses, s) }

// Project is a piece of client work.
type Project struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Client      string          `json:"client" validate:"required"`
	Status      ProjectStatus   `json:"status" validate:"required,oneof=active completed pending overdue"`
	Deadline    Date            `json:"deadline" validate:"required"`
	Progress    int             `json:"progress" validate:"min=0,max=100"`
	Budget      decimal.Decimal `json:"budget" validate:"gte=0"`
	Description string          `json:"description,omitempty"`
	StartDate   Date            `json:"startDate" validate:"required"`
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
