package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup wizard. Numbers stay strings
// while the form edits them.
type SetupValues struct {
	SnapshotPath string
	DueSoonDays  string
	Theme        string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		SnapshotPath: cfg.General.SnapshotPath,
		DueSoonDays:  strconv.Itoa(cfg.General.DueSoonDays),
		Theme:        cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run wizard. It is shown inside the TUI on
// first launch and run standalone by `gigdash setup`.
func NewSetupForm(vals *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to gigdash").
				Description("A few settings for your freelance dashboard.\nEverything can be changed later with `gigdash setup`."),
			huh.NewInput().
				Title("Snapshot file").
				Description("JSON export of your projects, clients, invoices and tasks. Leave blank for the demo data.").
				Placeholder("embedded seed").
				Value(&vals.SnapshotPath).
				Validate(validateSnapshotPath),
			huh.NewInput().
				Title("Due-soon window (days)").
				Description("Open tasks due within this many days count as due on the overview.").
				Value(&vals.DueSoonDays).
				Validate(validateDays),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),
		),
	)
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	if err := validateSnapshotPath(v.SnapshotPath); err != nil {
		return err
	}
	if err := validateDays(v.DueSoonDays); err != nil {
		return err
	}
	days, _ := strconv.Atoi(strings.TrimSpace(v.DueSoonDays))

	cfg.General.SnapshotPath = strings.TrimSpace(v.SnapshotPath)
	cfg.General.DueSoonDays = days
	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	}
	return nil
}

func validateSnapshotPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("snapshot file: %w", err)
	}
	if info.IsDir() {
		return errors.New("snapshot file: is a directory")
	}
	return nil
}

func validateDays(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 365 {
		return errors.New("enter a number of days between 1 and 365")
	}
	return nil
}
