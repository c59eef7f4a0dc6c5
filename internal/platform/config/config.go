package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"

	AttachmentBackendLocal  = "local"
	AttachmentBackendGDrive = "gdrive"

	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	DBMaxConns      int32
	DBConnLifetime  time.Duration
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	StoreBackend    string
	MigrationsPath  string
	ShutdownTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	AllowedOrigins []string
	RateLimit      string

	PosthogAPIKey   string
	PosthogEndpoint string

	AttachmentBackend     string
	AttachmentDir         string
	AttachmentMaxBytes    int64
	GDriveCredentialsFile string
	GDriveFolderID        string

	TreasurerIDs []string

	// AssistanceCategories overrides the assistance type to category table; nil keeps the built-in one.
	AssistanceCategories map[string]string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_CONN_LIFETIME", "30m")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_BACKEND", StoreBackendPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "association-backoffice")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "200-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("ATTACHMENT_BACKEND", AttachmentBackendLocal)
	v.SetDefault("ATTACHMENT_DIR", "attachments")
	v.SetDefault("ATTACHMENT_MAX_BYTES", 10<<20)
	v.SetDefault("GDRIVE_CREDENTIALS_FILE", "")
	v.SetDefault("GDRIVE_FOLDER_ID", "")
	v.SetDefault("TREASURER_IDS", "")
	v.SetDefault("ASSISTANCE_CATEGORIES_FILE", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		DBMaxConns:            v.GetInt32("DB_MAX_CONNS"),
		DBConnLifetime:        v.GetDuration("DB_CONN_LIFETIME"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		StoreBackend:          strings.ToLower(v.GetString("STORE_BACKEND")),
		MigrationsPath:        v.GetString("MIGRATIONS_PATH"),
		ShutdownTimeout:       v.GetDuration("SHUTDOWN_TIMEOUT"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		AllowedOrigins:        splitList(v.GetString("ALLOWED_ORIGINS")),
		RateLimit:             v.GetString("RATE_LIMIT"),
		PosthogAPIKey:         v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:       v.GetString("POSTHOG_ENDPOINT"),
		AttachmentBackend:     strings.ToLower(v.GetString("ATTACHMENT_BACKEND")),
		AttachmentDir:         v.GetString("ATTACHMENT_DIR"),
		AttachmentMaxBytes:    v.GetInt64("ATTACHMENT_MAX_BYTES"),
		GDriveCredentialsFile: v.GetString("GDRIVE_CREDENTIALS_FILE"),
		GDriveFolderID:        v.GetString("GDRIVE_FOLDER_ID"),
		TreasurerIDs:          splitList(v.GetString("TREASURER_IDS")),
	}

	switch cfg.StoreBackend {
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_BACKEND=%s", StoreBackendPostgres)
		}
	case StoreBackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	switch cfg.AttachmentBackend {
	case AttachmentBackendLocal:
	case AttachmentBackendGDrive:
		if cfg.GDriveCredentialsFile == "" || cfg.GDriveFolderID == "" {
			return nil, fmt.Errorf("GDRIVE_CREDENTIALS_FILE and GDRIVE_FOLDER_ID are required when ATTACHMENT_BACKEND=%s", AttachmentBackendGDrive)
		}
	default:
		return nil, fmt.Errorf("unknown ATTACHMENT_BACKEND %q", cfg.AttachmentBackend)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if len(cfg.TreasurerIDs) == 0 {
		slog.Warn("TREASURER_IDS not set. Every authenticated caller may record and edit payments.")
	}

	if file := v.GetString("ASSISTANCE_CATEGORIES_FILE"); file != "" {
		categories, err := loadAssistanceCategories(file)
		if err != nil {
			return nil, err
		}
		cfg.AssistanceCategories = categories
	}

	return cfg, nil
}

// loadAssistanceCategories reads an `assistance_categories` map (type -> category) from a
// YAML, JSON or TOML file.
func loadAssistanceCategories(file string) (map[string]string, error) {
	fv := viper.New()
	fv.SetConfigFile(file)
	if err := fv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read assistance categories file %s: %w", file, err)
	}
	raw := fv.GetStringMapString("assistance_categories")
	if len(raw) == 0 {
		return nil, fmt.Errorf("assistance categories file %s has no assistance_categories entries", file)
	}
	categories := make(map[string]string, len(raw))
	for k, val := range raw {
		categories[strings.ToUpper(k)] = val
	}
	return categories, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
