// Package config loads application configuration from command-line flags,
// environment variables, and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Server ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds persistence configuration.
type DataConfig struct {
	// BasePath is the directory for all durable state: the entity
	// database, the local reaction store, and the search index.
	BasePath string
	// Backend selects the entity store: "badger" (local key-value) or
	// "sqlite" (relational tables). Reaction sets always live in the
	// local key-value store regardless of this setting.
	Backend string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	AdvertiseMDNS bool
}

// Load reads configuration with precedence: flags > environment
// variables > .env file > defaults.
func Load() (*Config, error) {
	env := flag.String("env", "", "Environment (development, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	backend := flag.String("store-backend", "", "Entity store backend (badger, sqlite)")
	serverName := flag.String("server-name", "", "Display name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	advertiseMDNS := flag.String("advertise-mdns", "", "Advertise via mDNS (default: true)")
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	// The .env file is optional; a missing file is not an error.
	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: pick(*env, "BLOSSOM_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: pick(*logLevel, "BLOSSOM_LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: pick(*dataPath, "BLOSSOM_DATA_PATH", "~/blossom"),
			Backend:  pick(*backend, "BLOSSOM_STORE_BACKEND", BackendBadger),
		},
		Server: ServerConfig{
			Name:          pick(*serverName, "BLOSSOM_SERVER_NAME", "Blossom"),
			Port:          pick(*serverPort, "BLOSSOM_PORT", "8080"),
			ReadTimeout:   pickDuration("", "BLOSSOM_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:  pickDuration("", "BLOSSOM_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:   pickDuration("", "BLOSSOM_IDLE_TIMEOUT", 60*time.Second),
			AdvertiseMDNS: pickBool(*advertiseMDNS, "BLOSSOM_ADVERTISE_MDNS", true),
		},
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("invalid environment %q", c.App.Environment)
	}
	switch c.Data.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("invalid store backend %q (want %q or %q)",
			c.Data.Backend, BackendBadger, BackendSQLite)
	}
	if c.Data.BasePath == "" {
		return errors.New("data path must not be empty")
	}
	return nil
}

// expandDataPath resolves ~ and makes the data path absolute.
func (c *Config) expandDataPath() error {
	p := c.Data.BasePath
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("resolve data path: %w", err)
	}
	c.Data.BasePath = abs
	return nil
}

// pick returns the first non-empty value of flag, env var, default.
func pick(flagVal, envKey, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

func pickBool(flagVal, envKey string, def bool) bool {
	v := pick(flagVal, envKey, "")
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func pickDuration(flagVal, envKey string, def time.Duration) time.Duration {
	v := pick(flagVal, envKey, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// loadEnvFile reads KEY=VALUE lines into the process environment.
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
