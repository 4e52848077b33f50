package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/gigdash/internal/model"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Fatal("Exists() = true for empty config dir")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DueSoonDays != 7 || cfg.Server.Addr != "127.0.0.1:8790" {
		t.Fatalf("Load defaults = %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.SnapshotPath = "/data/snapshot.json"
	cfg.General.DueSoonDays = 14
	cfg.Views.Tasks = "priority"
	cfg.Server.LogFile = "/var/log/gigdash.log"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "gigdash", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[views]\nprojects = \"budget\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Views.DefaultSort(model.KindProject); got != "budget" {
		t.Fatalf("DefaultSort(projects) = %q, want budget", got)
	}
	if got := cfg.Views.DefaultSort(model.KindClient); got != "name" {
		t.Fatalf("DefaultSort(clients) = %q, want name", got)
	}
	if cfg.General.DueSoonDays != 7 {
		t.Fatalf("DueSoonDays = %d, want default 7", cfg.General.DueSoonDays)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "gigdash", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, doc := range []string{
		"[general]\ndue_soon_days = -1\n",
		"[general\n",
	} {
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(); err == nil {
			t.Fatalf("Load(%q) succeeded, want error", doc)
		}
	}
}

func TestSnapshotPath_EnvWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.SnapshotPath = "/from/config.json"

	t.Setenv(SnapshotEnv, "")
	if got := SnapshotPath(cfg); got != "/from/config.json" {
		t.Fatalf("SnapshotPath = %q, want config value", got)
	}
	t.Setenv(SnapshotEnv, "/from/env.json")
	if got := SnapshotPath(cfg); got != "/from/env.json" {
		t.Fatalf("SnapshotPath = %q, want env value", got)
	}
}

func TestViewsDBPath_UsesXDGData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	if got, want := ViewsDBPath(), filepath.Join(dir, "gigdash", "views.db"); got != want {
		t.Fatalf("ViewsDBPath = %q, want %q", got, want)
	}
}
