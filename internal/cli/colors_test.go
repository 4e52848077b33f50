package cli

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/gigdash/internal/model"
)

func assertCovers[K ~string](t *testing.T, name string, colors map[K]lipgloss.Color, all []K) {
	t.Helper()
	if len(colors) != len(all) {
		t.Fatalf("%s has %d entries, want %d", name, len(colors), len(all))
	}
	for _, v := range all {
		if _, ok := colors[v]; !ok {
			t.Fatalf("%s missing %q", name, v)
		}
	}
}

func TestColorMapsAreExhaustive(t *testing.T) {
	assertCovers(t, "ProjectStatusColors", ProjectStatusColors, model.AllProjectStatuses)
	assertCovers(t, "ClientStatusColors", ClientStatusColors, model.AllClientStatuses)
	assertCovers(t, "InvoiceStatusColors", InvoiceStatusColors, model.AllInvoiceStatuses)
	assertCovers(t, "TaskStatusColors", TaskStatusColors, model.AllTaskStatuses)
	assertCovers(t, "PriorityColors", PriorityColors, model.AllPriorities)
	assertCovers(t, "NotificationColors", NotificationColors, model.AllNotificationTypes)
	assertCovers(t, "ActivityColors", ActivityColors, model.AllActivityTypes)
}

func TestRenderProgressBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	tests := []struct {
		progress int
		want     string
	}{
		{0, "░░░░░░░░░░   0%"},
		{45, "████░░░░░░  45%"},
		{100, "██████████ 100%"},
		{140, "██████████ 100%"},
	}
	for _, tt := range tests {
		if got := RenderProgressBar(tt.progress, 10); got != tt.want {
			t.Fatalf("RenderProgressBar(%d) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := RenderTable(Table{
		Headers:    []string{"Name", "Budget"},
		Rows:       [][]string{{"CRM System", "$15,000"}, {"Landing Page", "$1,500"}},
		RightAlign: []bool{false, true},
	})
	want := "" +
		"╭──────────────┬─────────╮\n" +
		"│ Name         │  Budget │\n" +
		"├──────────────┼─────────┤\n" +
		"│ CRM System   │ $15,000 │\n" +
		"│ Landing Page │  $1,500 │\n" +
		"╰──────────────┴─────────╯\n"
	if out != want {
		t.Fatalf("RenderTable =\n%s\nwant\n%s", out, want)
	}
}
