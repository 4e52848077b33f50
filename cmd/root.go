// Package cmd implements the gigdash CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagSnapshot string
	flagNow      string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "gigdash",
	Short: "Freelancer dashboard for projects, clients, invoices and tasks",
	Long:  "Browse a freelance business snapshot: filtered views, summaries and analytics.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSnapshot, "snapshot", "", "Snapshot JSON file (default: config, $"+config.SnapshotEnv+", or the embedded seed)")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Evaluate dates as of this day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// snapshotPath resolves the snapshot location: flag, then environment, then
// config. Empty means the embedded seed.
func snapshotPath(cfg config.Config) string {
	if flagSnapshot != "" {
		return flagSnapshot
	}
	return config.SnapshotPath(cfg)
}

// loadSnapshot is the shared data loading path used by all commands.
func loadSnapshot(cfg config.Config) (*pipeline.LoadResult, error) {
	path := snapshotPath(cfg)
	if !flagQuiet && path != "" {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", path)
	}

	result, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %s records from %s\n",
			formatNumber(int64(result.Records)), result.Origin)
	}
	return result, nil
}

// loadAll reads the config and the snapshot together.
func loadAll() (config.Config, *pipeline.LoadResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	result, err := loadSnapshot(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, result, nil
}

// resolveNow returns the moment dates are evaluated against.
func resolveNow() (time.Time, error) {
	if flagNow == "" {
		return time.Now(), nil
	}
	d, err := model.ParseDate(flagNow)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	// Midday keeps the calendar day stable in any local offset.
	return d.Add(12 * time.Hour), nil
}

func dashboardOptions(cfg config.Config) pipeline.DashboardOptions {
	return pipeline.DashboardOptions{DueSoonDays: cfg.General.DueSoonDays}
}
