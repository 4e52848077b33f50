package cmd

import (
	"fmt"

	"github.com/theirongolddev/gigdash/internal/cli"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the freelancer profile",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	_, result, err := loadAll()
	if err != nil {
		return err
	}
	u := result.Snapshot.User

	fmt.Println()
	fmt.Println(cli.RenderTitle(u.Name))
	fmt.Println()

	pairs := [][2]string{
		{"Role", u.Role},
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"Location", u.Location},
		{"Company", u.Company},
		{"Website", u.Website},
		{"Hourly rate", cli.Money(cli.FormatCurrency(u.HourlyRate)) + "/hr"},
	}
	shown := pairs[:0]
	for _, p := range pairs {
		if p[1] != "" {
			shown = append(shown, p)
		}
	}
	fmt.Print(cli.RenderKeyValues("", shown))
	if u.Bio != "" {
		fmt.Println()
		fmt.Println("  " + cli.Muted(u.Bio))
	}
	fmt.Println()
	return nil
}
