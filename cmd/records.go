package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/store"

	"github.com/spf13/cobra"
)

// viewFlags are the filter and sort flags shared by every record command.
type viewFlags struct {
	search   string
	status   string
	priority string
	sort     string
	view     string
}

func (f *viewFlags) bind(cmd *cobra.Command, withPriority bool) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive substring search")
	cmd.Flags().StringVar(&f.status, "status", model.FilterAll, "Status filter (or \"all\")")
	if withPriority {
		cmd.Flags().StringVar(&f.priority, "priority", model.FilterAll, "Priority filter (or \"all\")")
	}
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort key (empty keeps snapshot order)")
	cmd.Flags().StringVar(&f.view, "view", "", "Apply a saved view; explicit flags override it")
}

// request builds the view request for kind. A saved view supplies the base
// parameters, explicit flags override them, and the configured default sort
// applies only when neither names a sort.
func (f *viewFlags) request(cmd *cobra.Command, kind model.Kind, cfg config.Config) (pipeline.ViewRequest, error) {
	req := pipeline.ViewRequest{Kind: kind}
	hasSort := false

	if f.view != "" {
		v, err := useSavedView(f.view)
		if err != nil {
			return req, err
		}
		if v.Kind != kind {
			return req, fmt.Errorf("saved view %q is for %s, not %s", f.view, v.Kind, kind)
		}
		req.Filter, req.Sort = v.Filter, v.Sort
		hasSort = true
	}

	flags := cmd.Flags()
	if flags.Changed("search") {
		req.Filter.Search = f.search
	}
	if flags.Changed("status") {
		req.Filter.Status = f.status
	}
	if flags.Changed("priority") {
		req.Filter.Priority = f.priority
	}
	if flags.Changed("sort") {
		req.Sort = query.SortKey(f.sort)
	} else if !hasSort {
		req.Sort = query.SortKey(cfg.Views.DefaultSort(kind))
	}
	return req, nil
}

func useSavedView(name string) (store.View, error) {
	views, err := store.Open(config.ViewsDBPath())
	if err != nil {
		return store.View{}, err
	}
	defer func() { _ = views.Close() }()

	v, err := views.Get(name)
	if err != nil {
		return store.View{}, err
	}
	if err := views.MarkUsed(name); err != nil {
		return store.View{}, err
	}
	return v, nil
}

// recordCommand wires one record kind to a cobra command.
type recordCommand struct {
	kind   model.Kind
	use    string
	short  string
	title  string
	render func(res *pipeline.ViewResult, now time.Time)
	flags  viewFlags
}

func (rc *recordCommand) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   rc.use,
		Short: rc.short,
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}
	rc.flags.bind(cmd, rc.kind == model.KindTask)
	return cmd
}

func (rc *recordCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, result, err := loadAll()
	if err != nil {
		return err
	}
	now, err := resolveNow()
	if err != nil {
		return err
	}

	req, err := rc.flags.request(cmd, rc.kind, cfg)
	if err != nil {
		return err
	}
	res, err := pipeline.RunView(result.Snapshot, req, now)
	if err != nil {
		if errors.Is(err, query.ErrInvalidFilter) || errors.Is(err, query.ErrInvalidSortKey) {
			return fmt.Errorf("%s: %w", rc.use, err)
		}
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(viewTitle(rc.title, req)))
	fmt.Println()
	if res.Count == 0 {
		fmt.Printf("  No %s match.\n\n", rc.kind)
		return nil
	}
	rc.render(res, now)
	return nil
}

func viewTitle(title string, req pipeline.ViewRequest) string {
	if req.Sort != "" {
		title += "  by " + string(req.Sort)
	}
	if !req.Filter.IsZero() {
		title += "  (filtered)"
	}
	return title
}

func init() {
	for _, rc := range []*recordCommand{
		{kind: model.KindProject, use: "projects", short: "List projects with budget and progress", title: "PROJECTS", render: renderProjects},
		{kind: model.KindClient, use: "clients", short: "List clients with lifetime revenue", title: "CLIENTS", render: renderClients},
		{kind: model.KindInvoice, use: "invoices", short: "List invoices with outstanding totals", title: "INVOICES", render: renderInvoices},
		{kind: model.KindTask, use: "tasks", short: "List tasks by due date and priority", title: "TASKS", render: renderTasks},
		{kind: model.KindNotification, use: "notifications", short: "List notifications", title: "NOTIFICATIONS", render: renderNotifications},
		{kind: model.KindActivity, use: "activity", short: "Show the activity log", title: "ACTIVITY", render: renderActivity},
	} {
		rootCmd.AddCommand(rc.command())
	}
}

func renderProjects(res *pipeline.ViewResult, now time.Time) {
	projects := res.Items.([]model.Project)
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			truncate(p.Name, 24),
			truncate(p.Client, 18),
			cli.Badge(cli.ProjectStatusColors, p.Status),
			dueCell(p.Deadline, pipeline.IsOverdue(p.Deadline, p.Status, now)),
			cli.RenderProgressBar(p.Progress, 10),
			cli.FormatCurrency(p.Budget),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Project", "Client", "Status", "Deadline", "Progress", "Budget"},
		Rows:       rows,
		RightAlign: []bool{false, false, false, false, false, true},
	}))
	fmt.Println()

	s := res.Summary.(model.ProjectSummary)
	fmt.Print(cli.RenderKeyValues("Summary", [][2]string{
		{"Projects", fmt.Sprintf("%d  (%d active, %d completed, %d pending, %d overdue)",
			s.Total, s.ActiveCount, s.CompletedCount, s.PendingCount, s.OverdueCount)},
		{"Past deadline", countCell(s.PastDeadlineCount)},
		{"Total budget", cli.Money(cli.FormatCurrency(s.TotalBudget))},
		{"Avg progress", fmt.Sprintf("%d%%", s.AverageProgress)},
		{"Completion", fmt.Sprintf("%d%%", s.CompletionPercent)},
	}))
	fmt.Println()
}

func renderClients(res *pipeline.ViewResult, _ time.Time) {
	clients := res.Items.([]model.Client)
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			truncate(c.Name, 20),
			truncate(c.Company, 20),
			cli.Badge(cli.ClientStatusColors, c.Status),
			cli.FormatNumber(int64(c.TotalProjects)),
			cli.FormatCurrency(c.TotalPaid),
			cli.FormatDay(c.LastContact),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Client", "Company", "Status", "Projects", "Total Paid", "Last Contact"},
		Rows:       rows,
		RightAlign: []bool{false, false, false, true, true, false},
	}))
	fmt.Println()

	s := res.Summary.(model.ClientSummary)
	fmt.Print(cli.RenderKeyValues("Summary", [][2]string{
		{"Clients", fmt.Sprintf("%d  (%d active, %d inactive)", s.Total, s.ActiveCount, s.InactiveCount)},
		{"Projects", cli.FormatNumber(int64(s.TotalProjects))},
		{"Total paid", cli.Money(cli.FormatCurrency(s.TotalPaid))},
	}))
	fmt.Println()
}

func renderInvoices(res *pipeline.ViewResult, now time.Time) {
	invoices := res.Items.([]model.Invoice)
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.ID,
			truncate(inv.ClientName, 18),
			truncate(inv.ProjectName, 22),
			cli.FormatCurrency(inv.Amount),
			cli.Badge(cli.InvoiceStatusColors, inv.Status),
			cli.FormatDay(inv.IssueDate),
			dueCell(inv.DueDate, pipeline.IsPastDue(inv, now)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Invoice", "Client", "Project", "Amount", "Status", "Issued", "Due"},
		Rows:       rows,
		RightAlign: []bool{false, false, false, true, false, false, false},
	}))
	fmt.Println()

	s := res.Summary.(model.InvoiceSummary)
	fmt.Print(cli.RenderKeyValues("Summary", [][2]string{
		{"Invoices", fmt.Sprintf("%d  (%d paid, %d pending, %d overdue, %d draft)",
			s.Total, s.PaidCount, s.PendingCount, s.OverdueCount, s.DraftCount)},
		{"Past due", countCell(s.PastDueCount)},
		{"Total", cli.FormatCurrency(s.TotalAmount)},
		{"Paid", cli.Money(cli.FormatCurrency(s.PaidAmount))},
		{"Outstanding", cli.Warn(cli.FormatCurrency(s.OutstandingAmount))},
		{"Collected", fmt.Sprintf("%d%%", s.PaidPercent)},
	}))
	fmt.Println()
}

func renderTasks(res *pipeline.ViewResult, now time.Time) {
	tasks := res.Items.([]model.Task)
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			truncate(t.Title, 30),
			truncate(t.ProjectName, 20),
			cli.Badge(cli.PriorityColors, t.Priority),
			cli.Badge(cli.TaskStatusColors, t.Status),
			dueCell(t.DueDate, pipeline.IsOverdue(t.DueDate, t.Status, now)),
			truncate(t.AssignedTo, 14),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Task", "Project", "Priority", "Status", "Due", "Assigned"},
		Rows:    rows,
	}))
	fmt.Println()

	s := res.Summary.(model.TaskSummary)
	fmt.Print(cli.RenderKeyValues("Summary", [][2]string{
		{"Tasks", fmt.Sprintf("%d  (%d todo, %d in progress, %d completed)",
			s.Total, s.TodoCount, s.InProgressCount, s.CompletedCount)},
		{"Priority", fmt.Sprintf("%d high, %d medium, %d low", s.HighCount, s.MediumCount, s.LowCount)},
		{"Overdue", countCell(s.OverdueCount)},
		{"Completion", fmt.Sprintf("%d%%", s.CompletionPercent)},
	}))
	fmt.Println()
}

func renderNotifications(res *pipeline.ViewResult, now time.Time) {
	notes := res.Items.([]model.Notification)
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		marker := " "
		if !n.Read {
			marker = cli.Warn("●")
		}
		rows = append(rows, []string{
			marker,
			cli.Badge(cli.NotificationColors, n.Type),
			truncate(n.Title, 24),
			truncate(n.Message, 40),
			cli.FormatRelative(n.Timestamp, now),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", "Type", "Title", "Message", "When"},
		Rows:    rows,
	}))
	fmt.Println()

	s := res.Summary.(model.NotificationSummary)
	pairs := [][2]string{
		{"Notifications", cli.FormatNumber(int64(s.Total))},
		{"Unread", countCell(s.Unread)},
	}
	for _, t := range model.AllNotificationTypes {
		pairs = append(pairs, [2]string{string(t), cli.FormatNumber(int64(s.ByType[t]))})
	}
	fmt.Print(cli.RenderKeyValues("Summary", pairs))
	fmt.Println()
}

func renderActivity(res *pipeline.ViewResult, now time.Time) {
	entries := res.Items.([]model.Activity)
	rows := make([][]string, 0, len(entries))
	for _, a := range entries {
		rows = append(rows, []string{
			cli.Badge(cli.ActivityColors, a.Type),
			truncate(a.Message, 52),
			cli.FormatRelative(a.Timestamp, now),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Type", "Message", "When"},
		Rows:    rows,
	}))
	fmt.Println()

	s := res.Summary.(model.ActivitySummary)
	pairs := [][2]string{{"Entries", cli.FormatNumber(int64(s.Total))}}
	for _, t := range model.AllActivityTypes {
		pairs = append(pairs, [2]string{string(t), cli.FormatNumber(int64(s.ByType[t]))})
	}
	fmt.Print(cli.RenderKeyValues("Summary", pairs))
	fmt.Println()
}

// dueCell renders a date, flagged when it has passed.
func dueCell(d model.Date, late bool) string {
	s := cli.FormatDay(d)
	if late {
		return cli.Warn(s + " !")
	}
	return s
}

func countCell(n int) string {
	if n > 0 {
		return cli.Warn(cli.FormatNumber(int64(n)))
	}
	return "0"
}
