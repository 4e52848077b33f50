package model

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// AllTaskStatuses lists task statuses in display order.
var AllTaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskCompleted}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool { return contains(AllTaskStatuses, s) }

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities lists priorities from lowest to highest.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool { return contains(AllPriorities, p) }

// Weight returns a numeric weight for sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task is a unit of work on a project. CompletedDate is expected to be set
// exactly when Status is completed; this is not enforced.
type Task struct {
	ID            string     `json:"id" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description"`
	ProjectID     string     `json:"projectId"`
	ProjectName   string     `json:"projectName"`
	Priority      Priority   `json:"priority" validate:"required,oneof=low medium high"`
	Status        TaskStatus `json:"status" validate:"required,oneof=todo in-progress completed"`
	DueDate       Date       `json:"dueDate" validate:"required"`
	AssignedTo    string     `json:"assignedTo"`
	CreatedDate   Date       `json:"createdDate" validate:"required"`
	CompletedDate *Date      `json:"completedDate,omitempty"`
}
