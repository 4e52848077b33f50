package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

// statusCompleted is the lifecycle value shared by projects and tasks.
const statusCompleted = "completed"

// IsOverdue reports whether a project deadline or task due date has passed
// without the record being completed. A date equal to today is not overdue.
// The stored "overdue" status plays no part: the two notions are reported
// side by side and never reconciled.
func IsOverdue[S ~string](due model.Date, status S, now time.Time) bool {
	if string(status) == statusCompleted {
		return false
	}
	return due.Compare(model.DateOf(now)) < 0
}

// IsPastDue reports whether an unpaid invoice is past its due date.
func IsPastDue(inv model.Invoice, now time.Time) bool {
	if inv.Status == model.InvoicePaid {
		return false
	}
	return inv.DueDate.Compare(model.DateOf(now)) < 0
}

// UnreadCount returns the number of notifications not yet read.
func UnreadCount(ns []model.Notification) int {
	n := 0
	for _, notif := range ns {
		if !notif.Read {
			n++
		}
	}
	return n
}

// Percent returns part/total*100 rounded half-up to an integer. ok is false
// when total is zero, in which case the caller shows "no data".
func Percent(part, total int) (pct int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return (part*200 + total) / (total * 2), true
}

// PercentOf is Percent for money amounts.
func PercentOf(part, total decimal.Decimal) (pct int, ok bool) {
	if !total.IsPositive() {
		return 0, false
	}
	return int(part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart()), true
}

// Tier buckets project progress for display.
type Tier string

const (
	TierHigh    Tier = "high"
	TierOnTrack Tier = "on-track"
	TierBehind  Tier = "behind"
	TierAtRisk  Tier = "at-risk"
)

// ProgressTier maps a progress percentage to its display tier.
func ProgressTier(progress int) Tier {
	switch {
	case progress >= 80:
		return TierHigh
	case progress >= 50:
		return TierOnTrack
	case progress >= 25:
		return TierBehind
	default:
		return TierAtRisk
	}
}

// InvoiceItemsTotal sums the stated amounts of an invoice's line items.
func InvoiceItemsTotal(inv model.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Amount)
	}
	return total
}
