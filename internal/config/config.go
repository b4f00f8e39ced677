// Package config loads application configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Addr is the HTTP listen address for the panel API.
	Addr string

	// SourcePath is the local path of the listings spreadsheet export (CSV).
	// When SourceURL is set it takes precedence over SourcePath.
	SourcePath string
	SourceURL  string

	// DisableMagnitudeFix turns off the VGV divide-by-10 correction for
	// over-threshold numeric cells.
	DisableMagnitudeFix bool

	// FeedbackURL is the external suggestion endpoint. Empty disables the
	// feedback channel.
	FeedbackURL string

	// Export settings used by cmd/export.
	ExportBackend string // "sqlite" or "postgres"
	SQLiteDSN     string
	PostgresDSN   string
	ExportTable   string
}

// Load reads the .env file (when present) and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using system env vars")
	}

	return &Config{
		Addr:                getEnv("PANEL_ADDR", ":8080"),
		SourcePath:          getEnv("PANEL_SOURCE_PATH", "empreendimentos.csv"),
		SourceURL:           getEnv("PANEL_SOURCE_URL", ""),
		DisableMagnitudeFix: getEnvBool("PANEL_DISABLE_MAGNITUDE_FIX", false),
		FeedbackURL:         getEnv("PANEL_FEEDBACK_URL", ""),
		ExportBackend:       getEnv("PANEL_EXPORT_BACKEND", "sqlite"),
		SQLiteDSN:           getEnv("PANEL_SQLITE_DSN", "painel.db"),
		PostgresDSN:         getEnv("PANEL_POSTGRES_DSN", ""),
		ExportTable:         getEnv("PANEL_EXPORT_TABLE", "listings"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
