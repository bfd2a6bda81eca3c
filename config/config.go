// Package config handles configuration loading and defaults.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Default values.
const (
	DefaultAddr     = ":7789"
	DefaultDriver   = DriverJSON
	DefaultDataFile = "todo_data.json"
)

// Config holds the full configuration for the server.
type Config struct {
	// Addr is the listen address, e.g. ":7789".
	Addr string `toml:"addr"`

	// Driver selects the storage backend: "json" or "sqlite".
	Driver string `toml:"driver"`

	// DataFile is the backing file for whichever driver is active
	// (a JSON document or an SQLite database).
	DataFile string `toml:"data_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:     DefaultAddr,
		Driver:   DefaultDriver,
		DataFile: DefaultDataFile,
	}
}

// Load reads the TOML file at path on top of the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run
// with.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	return nil
}
