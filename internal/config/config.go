// Package config loads and saves gigdash settings as TOML under the XDG
// config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"

	"github.com/theirongolddev/gigdash/internal/model"
)

// SnapshotEnv overrides general.snapshot_path when set.
const SnapshotEnv = "GIGDASH_SNAPSHOT"

// Config holds all gigdash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Views      ViewsConfig      `toml:"views"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	SnapshotPath string `toml:"snapshot_path,omitempty"`
	DueSoonDays  int    `toml:"due_soon_days"`
	Currency     string `toml:"currency"`
	TopClients   int    `toml:"top_clients"`
}

// ViewsConfig holds the default sort key for each page. An empty value keeps
// the snapshot's order.
type ViewsConfig struct {
	Projects      string `toml:"projects"`
	Clients       string `toml:"clients"`
	Invoices      string `toml:"invoices"`
	Tasks         string `toml:"tasks"`
	Notifications string `toml:"notifications"`
	Activity      string `toml:"activity"`
}

// DefaultSort returns the configured sort key for kind.
func (v ViewsConfig) DefaultSort(kind model.Kind) string {
	switch kind {
	case model.KindProject:
		return v.Projects
	case model.KindClient:
		return v.Clients
	case model.KindInvoice:
		return v.Invoices
	case model.KindTask:
		return v.Tasks
	case model.KindNotification:
		return v.Notifications
	case model.KindActivity:
		return v.Activity
	}
	return ""
}

// ServerConfig holds settings for `gigdash serve`.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	LogFile string `toml:"log_file,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DueSoonDays: 7,
			Currency:    "USD",
			TopClients:  5,
		},
		Views: ViewsConfig{
			Projects:      "deadline",
			Clients:       "name",
			Invoices:      "dueDate",
			Tasks:         "dueDate",
			Notifications: "timestamp",
			Activity:      "timestamp",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gigdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gigdash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "gigdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "gigdash")
}

// ViewsDBPath returns the path of the saved views database.
func ViewsDBPath() string {
	return filepath.Join(DataDir(), "views.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate rejects settings the rest of gigdash cannot act on.
func (c Config) Validate() error {
	if c.General.DueSoonDays < 0 {
		return fmt.Errorf("config: general.due_soon_days must not be negative, got %d", c.General.DueSoonDays)
	}
	if c.General.TopClients < 0 {
		return fmt.Errorf("config: general.top_clients must not be negative, got %d", c.General.TopClients)
	}
	return nil
}

// Save writes the config to disk. Concurrent writers are serialized with an
// advisory lock beside the file.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	lock := flock.New(ConfigPath() + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SnapshotPath returns the snapshot location from the environment or config,
// in that order. Empty means the embedded seed.
func SnapshotPath(cfg Config) string {
	if p := os.Getenv(SnapshotEnv); p != "" {
		return p
	}
	return cfg.General.SnapshotPath
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
