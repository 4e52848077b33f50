package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"
)

// ViewRequest is the full set of parameters for one page.
type ViewRequest struct {
	Kind   model.Kind    `json:"kind"`
	Filter query.Filter  `json:"filter"`
	Sort   query.SortKey `json:"sort,omitempty"`
}

// ViewResult is a filtered, ordered collection together with the summary of
// exactly those records. Items holds a slice of the kind's record type and
// Summary the kind's summary type.
type ViewResult struct {
	Kind    model.Kind    `json:"kind"`
	Sort    query.SortKey `json:"sort,omitempty"`
	Count   int           `json:"count"`
	Items   any           `json:"items"`
	Summary any           `json:"summary"`
}

func runView[T, S any](schema query.Schema[T], records []T, req ViewRequest, summarize func([]T) S) (*ViewResult, error) {
	items, err := query.FilterAndSort(schema, records, req.Filter, req.Sort)
	if err != nil {
		return nil, err
	}
	return &ViewResult{
		Kind:    schema.Kind,
		Sort:    req.Sort,
		Count:   len(items),
		Items:   items,
		Summary: summarize(items),
	}, nil
}

// RunView filters, orders and summarizes one collection of snap.
func RunView(snap *model.Snapshot, req ViewRequest, now time.Time) (*ViewResult, error) {
	switch req.Kind {
	case model.KindProject:
		return runView(query.Projects, snap.Projects, req, func(ps []model.Project) model.ProjectSummary {
			return SummarizeProjects(ps, now)
		})
	case model.KindClient:
		return runView(query.Clients, snap.Clients, req, SummarizeClients)
	case model.KindInvoice:
		return runView(query.Invoices, snap.Invoices, req, func(is []model.Invoice) model.InvoiceSummary {
			return SummarizeInvoices(is, now)
		})
	case model.KindTask:
		return runView(query.Tasks, snap.Tasks, req, func(ts []model.Task) model.TaskSummary {
			return SummarizeTasks(ts, now)
		})
	case model.KindNotification:
		return runView(query.Notifications, snap.Notifications, req, SummarizeNotifications)
	case model.KindActivity:
		return runView(query.Activities, snap.Activities, req, SummarizeActivities)
	}
	return nil, fmt.Errorf("%w: %q", query.ErrUnknownKind, req.Kind)
}
