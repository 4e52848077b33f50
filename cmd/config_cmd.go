package cmd

import (
	"fmt"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/source"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	snapshot := snapshotPath(cfg)
	if snapshot == "" {
		snapshot = source.SeedName
	}
	fmt.Printf("    Snapshot:      %s\n", snapshot)
	fmt.Printf("    Due soon:      %d days\n", dashboardOptions(cfg).Window())
	fmt.Printf("    Currency:      %s\n", cfg.General.Currency)
	fmt.Printf("    Top clients:   %d\n", cfg.General.TopClients)
	fmt.Println()

	fmt.Println("  [Views]")
	for _, kind := range model.AllKinds {
		sort := cfg.Views.DefaultSort(kind)
		if sort == "" {
			sort = "(snapshot order)"
		}
		fmt.Printf("    %-14s %s\n", string(kind)+":", sort)
	}
	fmt.Printf("    Saved views:   %s\n", config.ViewsDBPath())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	if cfg.Server.LogFile != "" {
		fmt.Printf("    Log file:      %s\n", cfg.Server.LogFile)
	} else {
		fmt.Println("    Log file:      stderr")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `gigdash setup` to reconfigure.")
	return nil
}
