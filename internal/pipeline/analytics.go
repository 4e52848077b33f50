package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

// OthersLabel names the bucket that collects clients beyond the top N.
const OthersLabel = "Others"

// StatusDistribution counts projects per stored status, in display order,
// with each status's share of the total.
func StatusDistribution(projects []model.Project) []model.StatusShare {
	counts := make(map[model.ProjectStatus]int, len(model.AllProjectStatuses))
	for _, p := range projects {
		counts[p.Status]++
	}

	out := make([]model.StatusShare, 0, len(model.AllProjectStatuses))
	for _, st := range model.AllProjectStatuses {
		share, _ := Percent(counts[st], len(projects))
		out = append(out, model.StatusShare{
			Status:       string(st),
			Count:        counts[st],
			SharePercent: share,
		})
	}
	return out
}

// ClientRevenueShare groups lifetime revenue by company, largest first.
// Companies past the first topN are folded into a single OthersLabel entry.
// topN <= 0 keeps every company. Companies with nothing paid are left out.
func ClientRevenueShare(clients []model.Client, topN int) []model.ClientShare {
	byCompany := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, c := range clients {
		if !c.TotalPaid.IsPositive() {
			continue
		}
		byCompany[c.Company] = byCompany[c.Company].Add(c.TotalPaid)
		total = total.Add(c.TotalPaid)
	}

	shares := make([]model.ClientShare, 0, len(byCompany))
	for company, paid := range byCompany {
		shares = append(shares, model.ClientShare{Company: company, TotalPaid: paid})
	}
	slices.SortFunc(shares, func(a, b model.ClientShare) int {
		if c := b.TotalPaid.Cmp(a.TotalPaid); c != 0 {
			return c
		}
		return strings.Compare(a.Company, b.Company)
	})

	if topN > 0 && len(shares) > topN {
		others := model.ClientShare{Company: OthersLabel, TotalPaid: decimal.Zero}
		for _, s := range shares[topN:] {
			others.TotalPaid = others.TotalPaid.Add(s.TotalPaid)
		}
		shares = append(shares[:topN], others)
	}

	for i := range shares {
		shares[i].SharePercent, _ = PercentOf(shares[i].TotalPaid, total)
	}
	return shares
}

// MonthlyEarnings sums paid invoices by the calendar month they were issued,
// oldest month first. Months without paid invoices are omitted.
func MonthlyEarnings(invoices []model.Invoice) []model.MonthlyEarnings {
	byMonth := make(map[string]*model.MonthlyEarnings)
	for _, inv := range invoices {
		if inv.Status != model.InvoicePaid {
			continue
		}
		key := inv.IssueDate.Format("2006-01")
		me, ok := byMonth[key]
		if !ok {
			month := time.Date(inv.IssueDate.Year(), inv.IssueDate.Month(), 1, 0, 0, 0, 0, time.UTC)
			me = &model.MonthlyEarnings{Month: month, Earnings: decimal.Zero}
			byMonth[key] = me
		}
		me.Earnings = me.Earnings.Add(inv.Amount)
		me.Invoices++
	}

	out := make([]model.MonthlyEarnings, 0, len(byMonth))
	for _, me := range byMonth {
		out = append(out, *me)
	}
	slices.SortFunc(out, func(a, b model.MonthlyEarnings) int {
		return a.Month.Compare(b.Month)
	})
	return out
}

// InvoiceDiscrepancies reports line items whose amount is not quantity times
// rate, and invoices whose amount is not the sum of their items. These
// relations are advisory; nothing is corrected. Invoices without items are
// not checked against their total.
func InvoiceDiscrepancies(invoices []model.Invoice) []model.InvoiceDiscrepancy {
	var out []model.InvoiceDiscrepancy
	for _, inv := range invoices {
		for _, item := range inv.Items {
			calc := item.Quantity.Mul(item.Rate)
			if !calc.Equal(item.Amount) {
				out = append(out, model.InvoiceDiscrepancy{
					InvoiceID:  inv.ID,
					ItemID:     item.ID,
					Stated:     item.Amount,
					Calculated: calc,
				})
			}
		}
		if len(inv.Items) == 0 {
			continue
		}
		if sum := InvoiceItemsTotal(inv); !sum.Equal(inv.Amount) {
			out = append(out, model.InvoiceDiscrepancy{
				InvoiceID:  inv.ID,
				Stated:     inv.Amount,
				Calculated: sum,
			})
		}
	}
	return out
}

// UpcomingDeadlines returns open projects ordered by deadline, nearest first,
// limited to n entries (n <= 0 returns all).
func UpcomingDeadlines(projects []model.Project, n int) []model.Project {
	open := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != model.ProjectCompleted {
			open = append(open, p)
		}
	}
	slices.SortStableFunc(open, func(a, b model.Project) int {
		return a.Deadline.Compare(b.Deadline)
	})
	if n > 0 && len(open) > n {
		open = open[:n]
	}
	return open
}
