package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"DATA_DIR", "STORAGE_TYPE", "DB_PATH", "SNAPSHOT_PATH", "SNAPSHOT_MAX_AGE",
		"ES_ENABLED", "ES_URL", "ES_INDEX_PREFIX", "ES_SYNC_INTERVAL", "API_ADDR",
		"CORS_ORIGINS", "CACHE_TTL", "BOT_ENABLED", "API_ENABLED", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := fromEnv("/srv/dugout")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/dugout", "data"), cfg.DataDir)
	assert.Equal(t, StorageSQLite, cfg.StorageType)
	assert.Equal(t, filepath.Join("/srv/dugout", "data", "dugout.db"), cfg.DBPath)
	assert.Equal(t, 7*24*time.Hour, cfg.SnapshotMaxAge)
	assert.False(t, cfg.ESEnabled)
	assert.Equal(t, "dugout", cfg.ESIndexPrefix)
	assert.True(t, cfg.BotEnabled)
	assert.True(t, cfg.APIEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "Memory")
	t.Setenv("ES_ENABLED", "true")
	t.Setenv("ES_SYNC_INTERVAL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("BOT_ENABLED", "false")

	cfg, err := fromEnv("/tmp")
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.True(t, cfg.ESEnabled)
	assert.Equal(t, 15*time.Minute, cfg.ESSyncInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.BotEnabled)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := fromEnv("/tmp")
	assert.ErrorContains(t, err, "CACHE_TTL")

	t.Setenv("CACHE_TTL", "")
	t.Setenv("API_ENABLED", "maybe")
	_, err = fromEnv("/tmp")
	assert.ErrorContains(t, err, "API_ENABLED")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Token:          "token",
			AppID:          "app",
			GuildID:        "guild",
			BotEnabled:     true,
			StorageType:    StorageSQLite,
			SnapshotMaxAge: time.Hour,
		}
	}

	assert.NoError(t, valid().validate())

	cfg := valid()
	cfg.Token = ""
	assert.ErrorContains(t, cfg.validate(), "DISCORD_TOKEN")

	cfg.BotEnabled = false
	assert.NoError(t, cfg.validate(), "Discord credentials are only needed for the bot")

	cfg = valid()
	cfg.StorageType = "postgres"
	assert.ErrorContains(t, cfg.validate(), "STORAGE_TYPE")

	cfg = valid()
	cfg.ESEnabled = true
	cfg.ESURL = ""
	assert.ErrorContains(t, cfg.validate(), "ES_URL")
}

func TestLoadStoreSkipsFrontEnds(t *testing.T) {
	for _, key := range []string{
		"DISCORD_TOKEN", "APP_ID", "GUILD_ID", "STORAGE_TYPE", "DB_PATH", "SNAPSHOT_PATH",
		"SNAPSHOT_MAX_AGE", "ES_ENABLED", "ES_SYNC_INTERVAL", "CACHE_TTL", "API_ENABLED",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DATA_DIR", filepath.Join(t.TempDir(), "data"))
	t.Setenv("BOT_ENABLED", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "DISCORD_TOKEN is required")

	cfg, err := LoadStore()
	require.NoError(t, err)
	assert.False(t, cfg.BotEnabled)
	assert.False(t, cfg.APIEnabled)
	assert.DirExists(t, cfg.DataDir)
}
