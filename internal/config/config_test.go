package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Storage.Driver != "sqlite" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Monitor.HungerInterval() != time.Minute {
		t.Fatalf("hunger interval = %v", cfg.Monitor.HungerInterval())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petverse.toml")
	doc := `
[server]
addr = ":9000"

[storage]
driver = "memory"

[monitor]
need_interval_seconds = 10

[autocare]
enabled = true
feed_threshold = 70
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Storage.Driver != "memory" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Monitor.NeedInterval() != 10*time.Second {
		t.Fatalf("need interval = %v", cfg.Monitor.NeedInterval())
	}
	// Untouched keys keep their defaults.
	if cfg.Monitor.HealthIntervalSeconds != 300 {
		t.Fatalf("health interval default lost: %d", cfg.Monitor.HealthIntervalSeconds)
	}
	if !cfg.AutoCare.Enabled || cfg.AutoCare.FeedThreshold != 70 {
		t.Fatalf("autocare = %+v", cfg.AutoCare)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PETVERSE_ADDR", ":7777")
	t.Setenv("PETVERSE_DB_DSN", "postgres://example/petverse")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Fatalf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "postgres" || cfg.Storage.DSN != "postgres://example/petverse" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petverse.toml")
	if err := os.WriteFile(path, []byte("[storage]\ndriver = \"oracle\"\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
