package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultExcelPath = "Dados_abertos_Consumo_Mensal.xlsx"
	defaultPort      = 8080
	defaultOutlierK  = 2.0
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	ExcelPath   string
	Port        int
	BearerToken string
	OutlierK    float64
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		ExcelPath: defaultExcelPath,
		Port:      defaultPort,
		OutlierK:  defaultOutlierK,
	}

	if path := os.Getenv("EXCEL_PATH"); path != "" {
		cfg.ExcelPath = path
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if kStr := os.Getenv("OUTLIER_K"); kStr != "" {
		if k, err := strconv.ParseFloat(kStr, 64); err == nil && k > 0 {
			cfg.OutlierK = k
		} else {
			return cfg, fmt.Errorf("invalid OUTLIER_K: %s", kStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
