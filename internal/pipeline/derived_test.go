package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

func TestIsOverdue_Boundary(t *testing.T) {
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		due    string
		status model.TaskStatus
		want   bool
	}{
		{"strictly before now", "2025-01-14", model.TaskTodo, true},
		{"long past", "2024-06-01", model.TaskInProgress, true},
		{"due today", "2025-01-15", model.TaskTodo, false},
		{"due later", "2025-01-16", model.TaskTodo, false},
		{"completed in the past", "2024-06-01", model.TaskCompleted, false},
		{"completed in the future", "2025-06-01", model.TaskCompleted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOverdue(model.MustDate(tt.due), tt.status, now)
			if got != tt.want {
				t.Fatalf("IsOverdue(%s, %s) = %v, want %v", tt.due, tt.status, got, tt.want)
			}
		})
	}
}

// A project with stored status "overdue" is only overdue by date when its
// deadline has passed, and an "active" project can be past its deadline.
func TestIsOverdue_IgnoresStoredStatus(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	if IsOverdue(model.MustDate("2025-03-01"), model.ProjectOverdue, now) {
		t.Fatal("future deadline with stored overdue status reported overdue")
	}
	if !IsOverdue(model.MustDate("2024-12-01"), model.ProjectActive, now) {
		t.Fatal("past deadline with active status not reported overdue")
	}
	if IsOverdue(model.MustDate("2024-12-01"), model.ProjectCompleted, now) {
		t.Fatal("completed project reported overdue")
	}
}

func TestIsPastDue(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		status model.InvoiceStatus
		due    string
		want   bool
	}{
		{model.InvoicePending, "2025-01-14", true},
		{model.InvoiceDraft, "2025-01-14", true},
		{model.InvoicePaid, "2025-01-14", false},
		{model.InvoiceOverdue, "2025-01-15", false},
	}
	for _, tt := range tests {
		inv := model.Invoice{Status: tt.status, DueDate: model.MustDate(tt.due)}
		if got := IsPastDue(inv, now); got != tt.want {
			t.Fatalf("IsPastDue(%s, %s) = %v, want %v", tt.status, tt.due, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        int
		wantOK      bool
	}{
		{0, 0, 0, false},
		{5, 0, 0, false},
		{0, 4, 0, true},
		{1, 8, 13, true}, // 12.5 rounds up
		{1, 3, 33, true},
		{2, 3, 67, true},
		{3, 8, 38, true}, // 37.5 rounds up
		{8, 8, 100, true},
	}
	for _, tt := range tests {
		got, ok := Percent(tt.part, tt.total)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("Percent(%d, %d) = %d, %v; want %d, %v", tt.part, tt.total, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPercentOf(t *testing.T) {
	got, ok := PercentOf(decimal.NewFromInt(17000), decimal.NewFromInt(31800))
	if !ok || got != 53 {
		t.Fatalf("PercentOf(17000, 31800) = %d, %v; want 53, true", got, ok)
	}
	if _, ok := PercentOf(decimal.NewFromInt(1), decimal.Zero); ok {
		t.Fatal("PercentOf with zero total reported ok")
	}
}

func TestProgressTier(t *testing.T) {
	tests := []struct {
		progress int
		want     Tier
	}{
		{100, TierHigh},
		{80, TierHigh},
		{79, TierOnTrack},
		{50, TierOnTrack},
		{49, TierBehind},
		{25, TierBehind},
		{24, TierAtRisk},
		{0, TierAtRisk},
	}
	for _, tt := range tests {
		if got := ProgressTier(tt.progress); got != tt.want {
			t.Fatalf("ProgressTier(%d) = %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestUnreadCount_Empty(t *testing.T) {
	if got := UnreadCount(nil); got != 0 {
		t.Fatalf("UnreadCount(nil) = %d, want 0", got)
	}
}
