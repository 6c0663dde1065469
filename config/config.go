// Package config loads service settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"f1countdown/season"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr   = ":8080"
	DefaultSiteURL      = "https://whattimeisthef1.com"
	DefaultPushInterval = time.Minute
)

type Config struct {
	ListenAddr    string        `yaml:"listen_addr"`
	ScheduleURL   string        `yaml:"schedule_url"`
	SiteURL       string        `yaml:"site_url"`
	CacheDuration time.Duration `yaml:"cache_duration"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	// PushInterval is how often /ws clients are re-evaluated. Zero disables pushes.
	PushInterval time.Duration `yaml:"push_interval"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
}

func Default() Config {
	return Config{
		ListenAddr:    DefaultListenAddr,
		ScheduleURL:   season.DefaultScheduleURL,
		SiteURL:       DefaultSiteURL,
		CacheDuration: season.DefaultCacheDuration,
		FetchTimeout:  season.DefaultFetchTimeout,
		PushInterval:  DefaultPushInterval,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load builds a Config. path may be empty, in which case only defaults and
// environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	if url := getenv("SCHEDULE_URL"); url != "" {
		c.ScheduleURL = url
	}
	if url := getenv("SITE_URL"); url != "" {
		c.SiteURL = url
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if getenv("DEBUG") == "1" {
		c.LogLevel = zerolog.LevelDebugValue
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr must not be empty"))
	}
	if c.ScheduleURL == "" {
		errs = append(errs, errors.New("schedule_url must not be empty"))
	}
	if c.CacheDuration <= 0 {
		errs = append(errs, fmt.Errorf("cache_duration must be positive, got %s", c.CacheDuration))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout))
	}
	if c.PushInterval < 0 {
		errs = append(errs, fmt.Errorf("push_interval must not be negative, got %s", c.PushInterval))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("log_format must be json or console, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
