// Package config loads server settings from a TOML file with environment
// overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   Server   `toml:"server"`
	Storage  Storage  `toml:"storage"`
	Monitor  Monitor  `toml:"monitor"`
	AutoCare AutoCare `toml:"autocare"`
	// SpeciesCatalog points at a YAML species file; empty uses the built-in
	// catalog.
	SpeciesCatalog string `toml:"species_catalog"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Storage selects the backend: "postgres" (DSN), "sqlite" (Path) or
// "memory".
type Storage struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	Path   string `toml:"path"`
}

type Monitor struct {
	HungerIntervalSeconds int `toml:"hunger_interval_seconds"`
	HealthIntervalSeconds int `toml:"health_interval_seconds"`
	NeedIntervalSeconds   int `toml:"need_interval_seconds"`
}

func (m Monitor) HungerInterval() time.Duration {
	return time.Duration(m.HungerIntervalSeconds) * time.Second
}

func (m Monitor) HealthInterval() time.Duration {
	return time.Duration(m.HealthIntervalSeconds) * time.Second
}

func (m Monitor) NeedInterval() time.Duration {
	return time.Duration(m.NeedIntervalSeconds) * time.Second
}

type AutoCare struct {
	Enabled       bool `toml:"enabled"`
	FeedThreshold int  `toml:"feed_threshold"`
	PlayThreshold int  `toml:"play_threshold"`
}

func Default() Config {
	return Config{
		Server:  Server{Addr: ":8080"},
		Storage: Storage{Driver: "sqlite", Path: "petverse.db"},
		Monitor: Monitor{
			HungerIntervalSeconds: 60,
			HealthIntervalSeconds: 300,
			NeedIntervalSeconds:   30,
		},
		AutoCare: AutoCare{Enabled: false, FeedThreshold: 80, PlayThreshold: 25},
	}
}

// Load reads the TOML file on top of the defaults; an empty path keeps the
// defaults. PETVERSE_ADDR and PETVERSE_DB_DSN override the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if addr := os.Getenv("PETVERSE_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dsn := os.Getenv("PETVERSE_DB_DSN"); dsn != "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.DSN = dsn
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver postgres requires a dsn")
		}
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage driver sqlite requires a path")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
