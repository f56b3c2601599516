package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes. "trust" reproduces the original deployment's behavior of
// accepting any request that carries an id and a token; "session" records
// issued tokens in the Sessions sheet and verifies them on every call.
const (
	AuthModeTrust   = "trust"
	AuthModeSession = "session"
)

// Config holds all application configuration.
type Config struct {
	ServerPort   string
	GinMode      string
	LogLevel     string
	LogFormat    string
	WorkbookPath string
	Timezone     string
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
	AuthMode       string
	// EnforceRoles makes the session authorizer reject tokens whose role
	// does not cover the requested action. Only meaningful in session mode.
	EnforceRoles bool
	// AllowDuplicateReflections keeps the original policy of accepting any
	// number of submissions per (student, date). Turning it off makes a
	// second same-day submission fail with a conflict error.
	AllowDuplicateReflections bool
	RateLimit                 int
	RateInterval              time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:                getEnv("SERVER_PORT", "8080"),
		GinMode:                   getEnv("GIN_MODE", "debug"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		LogFormat:                 getEnv("LOG_FORMAT", "pretty"),
		WorkbookPath:              getEnv("WORKBOOK_PATH", "./data/reflections.xlsx"),
		Timezone:                  getEnv("TIMEZONE", "Local"),
		AllowedOrigins:            parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		AuthMode:                  getEnv("AUTH_MODE", AuthModeTrust),
		EnforceRoles:              getEnvBool("AUTH_ENFORCE_ROLES", false),
		AllowDuplicateReflections: getEnvBool("ALLOW_DUPLICATE_REFLECTIONS", true),
		RateLimit:                 getEnvInt("RATE_LIMIT", 60),
		RateInterval:              time.Duration(getEnvInt("RATE_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

// Location resolves the configured timezone. Dates read back from the
// workbook are canonicalized in this zone, mirroring the original's use of
// the script timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
