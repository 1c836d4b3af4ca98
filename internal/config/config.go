// Package config loads the application configuration: HTTP server,
// scenario database, logging and sweep worker settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	EnvConfig   = "GOWST_CONFIG"
	EnvAddr     = "GOWST_ADDR"
	EnvDB       = "GOWST_DB"
	EnvLogLevel = "GOWST_LOG_LEVEL"
)

const appName = "gowst"

// Config is the application configuration
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	Sweep    Sweep    `yaml:"sweep"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// Database locates the scenario store
type Database struct {
	Path string `yaml:"path"`
}

// Log selects the log level (debug, info, warn, error) and format (text, json)
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Sweep bounds the orientation sweep worker pool; 0 uses every CPU
type Sweep struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
		},
		Database: Database{Path: defaultDBPath()},
		Log:      Log{Level: "info", Format: "text"},
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return appName + ".db"
	}
	return filepath.Join(dir, appName, appName+".db")
}

// DefaultPath returns ~/.config/gowst/gowst.yaml (or the platform equivalent)
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, appName+".yaml")
}

// Load resolves the configuration file in this order: explicit path,
// $GOWST_CONFIG, DefaultPath. An explicit or environment supplied file must
// exist; a missing default file leaves the built-in defaults. Environment
// overrides are applied last. The returned path is empty when no file was read.
func Load(explicit string) (Config, string, error) {
	return load(explicit, os.Getenv)
}

func load(explicit string, getenv func(string) string) (Config, string, error) {
	cfg := Default()

	path, required := explicit, true
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path, required = DefaultPath(), false
	}

	if path != "" {
		err := cfg.readFile(path)
		switch {
		case err == nil:
		case !required && errors.Is(err, fs.ErrNotExist):
			path = ""
		default:
			return Config{}, "", err
		}
	}

	cfg.applyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks values that cannot be used as given
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return errors.New("config: server.read_header_timeout must not be negative")
	}
	if c.Database.Path == "" {
		return errors.New("config: database.path is required")
	}
	if c.Sweep.Workers < 0 {
		return errors.New("config: sweep.workers must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
