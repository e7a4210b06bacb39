package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the record log
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token      string
	AppID      string
	GuildID    string
	BotEnabled bool

	// Storage
	DataDir        string
	StorageType    string
	DBPath         string
	SnapshotPath   string
	SnapshotMaxAge time.Duration

	// Elasticsearch mirror
	ESEnabled      bool
	ESURL          string
	ESUsername     string
	ESPassword     string
	ESIndexPrefix  string
	ESSyncInterval time.Duration

	// HTTP API
	APIEnabled  bool
	APIAddr     string
	CORSOrigins []string
	CacheTTL    time.Duration

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	return load(true)
}

// LoadStore reads only what is needed to open the record store. The
// Discord and HTTP front ends are disabled so their settings are not
// required.
func LoadStore() (*Config, error) {
	return load(false)
}

func load(frontEnds bool) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := fromEnv(wd)
	if err != nil {
		return nil, err
	}
	if !frontEnds {
		cfg.BotEnabled = false
		cfg.APIEnabled = false
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// fromEnv builds a Config from the process environment. Relative data
// paths are resolved against wd.
func fromEnv(wd string) (*Config, error) {
	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	cfg := &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		AppID:         os.Getenv("APP_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "INFO"),
		DataDir:       dataDir,
		StorageType:   strings.ToLower(getEnvWithDefault("STORAGE_TYPE", StorageSQLite)),
		DBPath:        getEnvWithDefault("DB_PATH", filepath.Join(dataDir, "dugout.db")),
		SnapshotPath:  getEnvWithDefault("SNAPSHOT_PATH", filepath.Join(dataDir, "snapshots")),
		ESURL:         getEnvWithDefault("ES_URL", "http://localhost:9200"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "dugout"),
		APIAddr:       getEnvWithDefault("API_ADDR", ":8080"),
		CORSOrigins:   splitList(getEnvWithDefault("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.BotEnabled, err = getBool("BOT_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.APIEnabled, err = getBool("API_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.ESEnabled, err = getBool("ES_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.SnapshotMaxAge, err = getDuration("SNAPSHOT_MAX_AGE", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ESSyncInterval, err = getDuration("ES_SYNC_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.BotEnabled {
		if c.Token == "" {
			return fmt.Errorf("DISCORD_TOKEN is required")
		}
		if c.AppID == "" {
			return fmt.Errorf("APP_ID is required")
		}
		if c.GuildID == "" {
			return fmt.Errorf("GUILD_ID is required")
		}
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	if c.ESEnabled && c.ESURL == "" {
		return fmt.Errorf("ES_URL is required when ES_ENABLED is set")
	}
	if c.SnapshotMaxAge <= 0 {
		return fmt.Errorf("SNAPSHOT_MAX_AGE must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
