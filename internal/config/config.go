package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers selectable with STORE_DRIVER.
const (
	DriverRemote   = "remote"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the console's runtime configuration.
type Config struct {
	Port        string
	APIBaseURL  string
	APITimeout  time.Duration
	PageSize    int
	StoreDriver string
	DatabaseURL string
	AppName     string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        getenv("PORT"),
		APIBaseURL:  strings.TrimRight(getenv("API_BASE_URL"), "/"),
		StoreDriver: strings.ToLower(strings.TrimSpace(getenv("STORE_DRIVER"))),
		DatabaseURL: getenv("DATABASE_URL"),
		AppName:     getenv("APP_NAME"),
		APITimeout:  10 * time.Second,
		PageSize:    10,
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.AppName == "" {
		cfg.AppName = "Factory Console"
	}

	if v := getenv("API_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, fmt.Errorf("API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}
	if v := getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("PAGE_SIZE: %q is not a positive integer", v)
		}
		cfg.PageSize = n
	}

	if cfg.StoreDriver == "" {
		// Without a factory service the console runs on the demo dataset
		cfg.StoreDriver = DriverRemote
		if cfg.APIBaseURL == "" {
			cfg.StoreDriver = DriverMemory
		}
	}
	switch cfg.StoreDriver {
	case DriverRemote:
		if cfg.APIBaseURL == "" {
			return cfg, fmt.Errorf("API_BASE_URL is required with STORE_DRIVER=%s", DriverRemote)
		}
	case DriverMemory, DriverPostgres:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// Demo reports whether the console serves its own dataset and tokens.
func (c Config) Demo() bool {
	return c.StoreDriver != DriverRemote
}

// parseTimeout accepts a Go duration ("15s") or plain milliseconds ("15000").
func parseTimeout(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("%q must be positive", v)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%q must be positive", v)
	}
	return d, nil
}
