package cmd

import (
	"fmt"

	"github.com/theirongolddev/gigdash/internal/cli"
	"github.com/theirongolddev/gigdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagTopClients int

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Revenue by client, monthly earnings and invoice checks",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	analyticsCmd.Flags().IntVar(&flagTopClients, "top", 0, "Clients to show before grouping the rest (default from config)")
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	cfg, result, err := loadAll()
	if err != nil {
		return err
	}
	snap := result.Snapshot

	topN := cfg.General.TopClients
	if cmd.Flags().Changed("top") {
		topN = flagTopClients
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ANALYTICS"))
	fmt.Println()

	shares := pipeline.ClientRevenueShare(snap.Clients, topN)
	if len(shares) == 0 {
		fmt.Println("  No client revenue recorded.")
		fmt.Println()
	} else {
		top := shares[0].TotalPaid.InexactFloat64()
		fmt.Println("  " + cli.Muted("Revenue by client"))
		for _, s := range shares {
			fmt.Println(cli.RenderHorizontalBar(truncate(s.Company, 18), 18, s.TotalPaid.InexactFloat64(), top, 24,
				fmt.Sprintf("%s  %d%%", cli.FormatCurrency(s.TotalPaid), s.SharePercent)))
		}
		fmt.Println()
	}

	months := pipeline.MonthlyEarnings(snap.Invoices)
	if len(months) > 0 {
		values := make([]float64, len(months))
		rows := make([][]string, 0, len(months))
		for i, m := range months {
			values[i] = m.Earnings.InexactFloat64()
			rows = append(rows, []string{
				cli.FormatMonth(m.Month),
				cli.FormatNumber(int64(m.Invoices)),
				cli.FormatCurrency(m.Earnings),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Monthly Earnings  " + cli.RenderSparkline(values),
			Headers:    []string{"Month", "Invoices", "Paid"},
			Rows:       rows,
			RightAlign: []bool{false, true, true},
		}))
		fmt.Println()
	}

	discrepancies := pipeline.InvoiceDiscrepancies(snap.Invoices)
	if len(discrepancies) == 0 {
		fmt.Println("  " + cli.Muted("Invoice arithmetic checks out."))
		fmt.Println()
		return nil
	}
	rows := make([][]string, 0, len(discrepancies))
	for _, d := range discrepancies {
		item := d.ItemID
		if item == "" {
			item = "(total)"
		}
		rows = append(rows, []string{
			d.InvoiceID,
			item,
			d.Stated.StringFixed(2),
			cli.Warn(d.Calculated.StringFixed(2)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "Invoice Discrepancies",
		Headers:    []string{"Invoice", "Item", "Stated", "Calculated"},
		Rows:       rows,
		RightAlign: []bool{false, false, true, true},
	}))
	fmt.Println()
	return nil
}
