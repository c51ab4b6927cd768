package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// localOrigins are always allowed for CORS so the frontend works in local and
// docker-compose setups without extra configuration.
var localOrigins = []string{
	"http://localhost:4000",
	"http://frontend:4000",
	"http://localhost:3000",
	"http://frontend:3000",
}

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// AppID identifies the deployment; it feeds the derived database name,
	// the preview CORS origin, and the blob path prefix.
	AppID  string
	UserID string

	// Azure blob storage coordinates. The files endpoints answer 503 until
	// all three are set.
	StorageAccount   string
	StorageContainer string
	StorageSAS       string

	// CacheTTLSeconds is the blob cache time-to-live (default 3600).
	CacheTTLSeconds int

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is the list of origins allowed for CORS.
	CORSAllowedOrigins []string
}

func Load() Config {
	appID := getEnv("APP_ID", "default_app")

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", deriveDBName(os.Getenv("APP_ID"))),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", ""),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		AppID:  appID,
		UserID: getEnv("USER_ID", "default_user"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER_APP_ASSET", ""),
		StorageSAS:       getEnv("AZURE_STORAGE_SAS", ""),

		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 3600),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: corsOrigins(
			os.Getenv("APP_ID"),
			os.Getenv("PREVIEW_DOMAIN"),
			strings.EqualFold(os.Getenv("PREVIEW_USE_HTTPS"), "true"),
		),
	}
}

// BlobConfigured reports whether all Azure storage coordinates are present.
func (c Config) BlobConfigured() bool {
	return c.StorageAccount != "" && c.StorageContainer != "" && c.StorageSAS != ""
}

// deriveDBName builds the per-deployment database name from the app id:
// "app_" plus the first 8 characters of the id with dashes removed,
// lowercased. Empty id falls back to "app_default".
func deriveDBName(appID string) string {
	if appID == "" {
		return "app_default"
	}
	short := strings.ToLower(strings.ReplaceAll(appID, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return "app_" + short
}

// corsOrigins returns the preview origin for this deployment (when both the
// app id and preview domain are known) plus the fixed local defaults.
func corsOrigins(appID, previewDomain string, useHTTPS bool) []string {
	origins := make([]string, 0, len(localOrigins)+1)
	if appID != "" && previewDomain != "" {
		scheme := "http"
		if useHTTPS {
			scheme = "https"
		}
		origins = append(origins, fmt.Sprintf("%s://app-%s.%s", scheme, appID, previewDomain))
	}
	return append(origins, localOrigins...)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
