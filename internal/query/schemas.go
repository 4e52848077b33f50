package query

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/theirongolddev/gigdash/internal/model"
)

// Sort keys. Text keys compare byte-wise, so upper case sorts before lower case.
const (
	SortDeadline    SortKey = "deadline"
	SortProgress    SortKey = "progress"
	SortBudget      SortKey = "budget"
	SortName        SortKey = "name"
	SortTotalPaid   SortKey = "totalPaid"
	SortJoinDate    SortKey = "joinDate"
	SortLastContact SortKey = "lastContact"
	SortDueDate     SortKey = "dueDate"
	SortIssueDate   SortKey = "issueDate"
	SortAmount      SortKey = "amount"
	SortID          SortKey = "id"
	SortPriority    SortKey = "priority"
	SortTitle       SortKey = "title"
	SortCreatedDate SortKey = "createdDate"
	SortTimestamp   SortKey = "timestamp"
)

// Projects is the schema for the projects page.
var Projects = Schema[model.Project]{
	Kind:        model.KindProject,
	Search:      func(p model.Project) []string { return []string{p.Name, p.Client} },
	StatusLabel: "status",
	Status:      func(p model.Project) string { return string(p.Status) },
	Statuses:    names(model.AllProjectStatuses),
	Sorts: []SortSpec[model.Project]{
		{SortDeadline, func(a, b model.Project) int { return a.Deadline.Compare(b.Deadline) }},
		{SortProgress, func(a, b model.Project) int { return cmp.Compare(b.Progress, a.Progress) }},
		{SortBudget, func(a, b model.Project) int { return b.Budget.Cmp(a.Budget) }},
		{SortName, func(a, b model.Project) int { return strings.Compare(a.Name, b.Name) }},
	},
}

// Clients is the schema for the clients page.
var Clients = Schema[model.Client]{
	Kind:        model.KindClient,
	Search:      func(c model.Client) []string { return []string{c.Name, c.Company, c.Email} },
	StatusLabel: "status",
	Status:      func(c model.Client) string { return string(c.Status) },
	Statuses:    names(model.AllClientStatuses),
	Sorts: []SortSpec[model.Client]{
		{SortName, func(a, b model.Client) int { return strings.Compare(a.Name, b.Name) }},
		{SortTotalPaid, func(a, b model.Client) int { return b.TotalPaid.Cmp(a.TotalPaid) }},
		{SortJoinDate, func(a, b model.Client) int { return a.JoinDate.Compare(b.JoinDate) }},
		{SortLastContact, func(a, b model.Client) int { return b.LastContact.Compare(a.LastContact) }},
	},
}

// Invoices is the schema for the invoices page.
var Invoices = Schema[model.Invoice]{
	Kind: model.KindInvoice,
	Search: func(i model.Invoice) []string {
		return []string{i.ClientName, i.ProjectName, i.ID}
	},
	StatusLabel: "status",
	Status:      func(i model.Invoice) string { return string(i.Status) },
	Statuses:    names(model.AllInvoiceStatuses),
	Sorts: []SortSpec[model.Invoice]{
		{SortDueDate, func(a, b model.Invoice) int { return a.DueDate.Compare(b.DueDate) }},
		{SortIssueDate, func(a, b model.Invoice) int { return b.IssueDate.Compare(a.IssueDate) }},
		{SortAmount, func(a, b model.Invoice) int { return b.Amount.Cmp(a.Amount) }},
		{SortID, func(a, b model.Invoice) int { return strings.Compare(a.ID, b.ID) }},
	},
}

// Tasks is the schema for the tasks page. It is the only kind with a
// priority dimension.
var Tasks = Schema[model.Task]{
	Kind: model.KindTask,
	Search: func(t model.Task) []string {
		return []string{t.Title, t.Description, t.ProjectName}
	},
	StatusLabel: "status",
	Status:      func(t model.Task) string { return string(t.Status) },
	Statuses:    names(model.AllTaskStatuses),
	Priority:    func(t model.Task) string { return string(t.Priority) },
	Priorities:  names(model.AllPriorities),
	Sorts: []SortSpec[model.Task]{
		{SortDueDate, func(a, b model.Task) int { return a.DueDate.Compare(b.DueDate) }},
		{SortPriority, func(a, b model.Task) int { return cmp.Compare(b.Priority.Weight(), a.Priority.Weight()) }},
		{SortTitle, func(a, b model.Task) int { return strings.Compare(a.Title, b.Title) }},
		{SortCreatedDate, func(a, b model.Task) int { return b.CreatedDate.Compare(a.CreatedDate) }},
	},
}

// Notifications is filtered by notification type.
var Notifications = Schema[model.Notification]{
	Kind:        model.KindNotification,
	Search:      func(n model.Notification) []string { return []string{n.Title, n.Message} },
	StatusLabel: "type",
	Status:      func(n model.Notification) string { return string(n.Type) },
	Statuses:    names(model.AllNotificationTypes),
	Sorts: []SortSpec[model.Notification]{
		{SortTimestamp, func(a, b model.Notification) int { return b.Timestamp.Compare(a.Timestamp) }},
	},
}

// Activities is filtered by activity type.
var Activities = Schema[model.Activity]{
	Kind:        model.KindActivity,
	Search:      func(a model.Activity) []string { return []string{a.Message} },
	StatusLabel: "type",
	Status:      func(a model.Activity) string { return string(a.Type) },
	Statuses:    names(model.AllActivityTypes),
	Sorts: []SortSpec[model.Activity]{
		{SortTimestamp, func(a, b model.Activity) int { return b.Timestamp.Compare(a.Timestamp) }},
	},
}

func names[S ~string](list []S) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}

// Info is the non-generic description of a kind's view parameters, for
// surfaces that cycle through filters and sorts.
type Info struct {
	Kind        model.Kind `json:"kind"`
	StatusLabel string     `json:"statusLabel"`
	Statuses    []string   `json:"statuses"`
	Priorities  []string   `json:"priorities,omitempty"`
	SortKeys    []SortKey  `json:"sortKeys"`
}

func validateView[T any](s Schema[T], f Filter, key SortKey) error {
	if err := s.Validate(f); err != nil {
		return err
	}
	return s.ValidateSort(key)
}

// ValidateView checks a filter and sort key against kind's schema without
// running a query.
func ValidateView(kind model.Kind, f Filter, key SortKey) error {
	switch kind {
	case model.KindProject:
		return validateView(Projects, f, key)
	case model.KindClient:
		return validateView(Clients, f, key)
	case model.KindInvoice:
		return validateView(Invoices, f, key)
	case model.KindTask:
		return validateView(Tasks, f, key)
	case model.KindNotification:
		return validateView(Notifications, f, key)
	case model.KindActivity:
		return validateView(Activities, f, key)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func infoOf[T any](s Schema[T]) Info {
	return Info{
		Kind:        s.Kind,
		StatusLabel: s.StatusLabel,
		Statuses:    s.Statuses,
		Priorities:  s.Priorities,
		SortKeys:    s.SortKeys(),
	}
}

// Describe returns the view parameters kind accepts.
func Describe(kind model.Kind) (Info, error) {
	switch kind {
	case model.KindProject:
		return infoOf(Projects), nil
	case model.KindClient:
		return infoOf(Clients), nil
	case model.KindInvoice:
		return infoOf(Invoices), nil
	case model.KindTask:
		return infoOf(Tasks), nil
	case model.KindNotification:
		return infoOf(Notifications), nil
	case model.KindActivity:
		return infoOf(Activities), nil
	}
	return Info{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
