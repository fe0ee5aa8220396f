package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultDashboardURL   = "http://localhost:8081"
	defaultPort           = 8081
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the dashboard service.
type Config struct {
	APIURL         string
	DashboardURL   string
	Port           int
	RequestTimeout time.Duration
	ShowGWh        bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		APIURL:         defaultAPIURL,
		DashboardURL:   defaultDashboardURL,
		Port:           defaultPort,
		RequestTimeout: defaultRequestTimeout,
		ShowGWh:        true,
	}

	if v := strings.TrimSpace(os.Getenv("API_URL")); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}

	if v := strings.TrimSpace(os.Getenv("DASHBOARD_URL")); v != "" {
		cfg.DashboardURL = v
	}

	if v := strings.TrimSpace(os.Getenv("DASHBOARD_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid DASHBOARD_PORT: %s", v)
		}
		cfg.Port = port
	}

	if v := strings.TrimSpace(os.Getenv("DASHBOARD_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid DASHBOARD_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("SHOW_GWH")); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SHOW_GWH: %s", v)
		}
		cfg.ShowGWh = show
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Unit is the display unit implied by ShowGWh.
func (c Config) Unit() string {
	if c.ShowGWh {
		return "GWh"
	}
	return "MWh"
}
