package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"f1countdown/season"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "SCHEDULE_URL", "SITE_URL", "LOG_LEVEL", "DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.CacheDuration)
	require.Equal(t, 30*time.Second, cfg.FetchTimeout)
	require.Equal(t, season.DefaultScheduleURL, cfg.ScheduleURL)
	require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen_addr: "127.0.0.1:9000"
schedule_url: "https://example.test/2026.json"
cache_duration: 15m
fetch_timeout: 5s
push_interval: 0s
log_level: warn
log_format: console
`)
	clearEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	require.Equal(t, "https://example.test/2026.json", cfg.ScheduleURL)
	require.Equal(t, DefaultSiteURL, cfg.SiteURL)
	require.Equal(t, 15*time.Minute, cfg.CacheDuration)
	require.Equal(t, 5*time.Second, cfg.FetchTimeout)
	require.Zero(t, cfg.PushInterval)
	require.Equal(t, zerolog.WarnLevel, cfg.Level())
	require.Equal(t, "console", cfg.LogFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
cache_duration: -1m
log_level: loud
`)
	clearEnv(t)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cache_duration")
	require.Contains(t, err.Error(), "log_level")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":         "3000",
		"SCHEDULE_URL": "https://example.test/feed.json",
		"DEBUG":        "1",
	}
	cfg := Default()
	cfg.applyEnv(func(key string) string { return env[key] })

	require.Equal(t, ":3000", cfg.ListenAddr)
	require.Equal(t, "https://example.test/feed.json", cfg.ScheduleURL)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
	require.NoError(t, cfg.Validate())
}
