// Package config loads the stadium-alerts configuration.
//
// Values come from, in increasing priority: built-in defaults, the YAML config file
// (default ~/.stadium-alerts.yaml) and STADIUM_ALERTS_* environment variables, with
// nested keys joined by underscores (STADIUM_ALERTS_CHANNELS_ALERTS_WEBHOOK_URL).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/normalize"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/pfrederiksen/stadium-alerts/internal/scraper"
	"github.com/pfrederiksen/stadium-alerts/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix       = "STADIUM_ALERTS"
	DefaultFileName = ".stadium-alerts"
)

// Channel kinds.
const (
	KindDiscord  = "discord"
	KindTelegram = "telegram"
	KindStdout   = "stdout"
	KindNone     = "none"
)

// ChannelConfig selects where one kind of message goes.
type ChannelConfig struct {
	Kind       string `mapstructure:"kind" yaml:"kind"`
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url,omitempty"`
	BotToken   string `mapstructure:"bot_token" yaml:"bot_token,omitempty"`
	ChatID     string `mapstructure:"chat_id" yaml:"chat_id,omitempty"`
}

// ChannelsConfig holds the alert channel and the debug channel. The debug channel
// receives heartbeat notices and new calendar announcements.
type ChannelsConfig struct {
	Alerts ChannelConfig `mapstructure:"alerts" yaml:"alerts"`
	Debug  ChannelConfig `mapstructure:"debug" yaml:"debug"`
}

// ScheduleConfig holds the cron specs used by serve.
type ScheduleConfig struct {
	Daily  string `mapstructure:"daily" yaml:"daily"`
	Weekly string `mapstructure:"weekly" yaml:"weekly"`
	Links  string `mapstructure:"links" yaml:"links"`
}

// MirrorConfig describes the git mirror of the calendar tables.
type MirrorConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	RepoURL string `mapstructure:"repo_url" yaml:"repo_url"`
	Branch  string `mapstructure:"branch" yaml:"branch"`
}

// Config is the top-level application configuration.
type Config struct {
	SourceDir       string                `mapstructure:"source_dir" yaml:"source_dir"`
	DataDir         string                `mapstructure:"data_dir" yaml:"data_dir"`
	Timezone        string                `mapstructure:"timezone" yaml:"timezone"`
	LogLevel        string                `mapstructure:"log_level" yaml:"log_level"`
	CalendarPageURL string                `mapstructure:"calendar_page_url" yaml:"calendar_page_url"`
	ChunkBudget     int                   `mapstructure:"chunk_budget" yaml:"chunk_budget"`
	Mirror          MirrorConfig          `mapstructure:"mirror" yaml:"mirror"`
	Thresholds      disruption.Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
	Normalize       normalize.Config      `mapstructure:"normalize" yaml:"normalize"`
	Channels        ChannelsConfig        `mapstructure:"channels" yaml:"channels"`
	Schedule        ScheduleConfig        `mapstructure:"schedule" yaml:"schedule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SourceDir:       "~/.local/share/stadium-alerts/calendars-git",
		DataDir:         "~/.local/share/stadium-alerts",
		Timezone:        "America/New_York",
		LogLevel:        "info",
		CalendarPageURL: scraper.CalendarPageURL,
		ChunkBudget:     report.DefaultChunkBudget,
		Mirror: MirrorConfig{
			Enabled: true,
			RepoURL: storage.DefaultRepoURL,
			Branch:  "main",
		},
		Thresholds: disruption.DefaultThresholds(),
		Normalize:  normalize.DefaultConfig(),
		Channels: ChannelsConfig{
			Alerts: ChannelConfig{Kind: KindStdout},
			Debug:  ChannelConfig{Kind: KindNone},
		},
		Schedule: ScheduleConfig{
			Daily:  "0 7 * * *",
			Weekly: "0 18 * * 0",
			Links:  "0 9 * * *",
		},
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source_dir", cfg.SourceDir)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("calendar_page_url", cfg.CalendarPageURL)
	v.SetDefault("chunk_budget", cfg.ChunkBudget)

	v.SetDefault("mirror.enabled", cfg.Mirror.Enabled)
	v.SetDefault("mirror.repo_url", cfg.Mirror.RepoURL)
	v.SetDefault("mirror.branch", cfg.Mirror.Branch)

	v.SetDefault("thresholds.large_attendance", cfg.Thresholds.LargeAttendance)
	v.SetDefault("thresholds.early_cutoff_hour", cfg.Thresholds.EarlyCutoffHour)
	v.SetDefault("thresholds.cluster_window", cfg.Thresholds.ClusterWindow.String())

	v.SetDefault("normalize.venues", cfg.Normalize.Venues)
	v.SetDefault("normalize.replacements", cfg.Normalize.Replacements)
	v.SetDefault("normalize.note_marker", cfg.Normalize.NoteMarker)

	for name, ch := range map[string]ChannelConfig{"alerts": cfg.Channels.Alerts, "debug": cfg.Channels.Debug} {
		v.SetDefault("channels."+name+".kind", ch.Kind)
		v.SetDefault("channels."+name+".webhook_url", ch.WebhookURL)
		v.SetDefault("channels."+name+".bot_token", ch.BotToken)
		v.SetDefault("channels."+name+".chat_id", ch.ChatID)
	}

	v.SetDefault("schedule.daily", cfg.Schedule.Daily)
	v.SetDefault("schedule.weekly", cfg.Schedule.Weekly)
	v.SetDefault("schedule.links", cfg.Schedule.Links)
}

// Load reads the configuration. An empty path looks for ~/.stadium-alerts.yaml and
// falls back to defaults when it does not exist; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would fail at run time.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Thresholds.LargeAttendance < 0 {
		return fmt.Errorf("thresholds.large_attendance must not be negative")
	}
	if c.Thresholds.EarlyCutoffHour < 0 || c.Thresholds.EarlyCutoffHour > 24 {
		return fmt.Errorf("thresholds.early_cutoff_hour must be between 0 and 24")
	}
	if c.Thresholds.ClusterWindow < 0 {
		return fmt.Errorf("thresholds.cluster_window must not be negative")
	}
	for name, ch := range map[string]ChannelConfig{"alerts": c.Channels.Alerts, "debug": c.Channels.Debug} {
		if err := ch.validate(); err != nil {
			return fmt.Errorf("channels.%s: %w", name, err)
		}
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{"daily": c.Schedule.Daily, "weekly": c.Schedule.Weekly, "links": c.Schedule.Links} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("schedule.%s: %w", name, err)
		}
	}
	return nil
}

func (ch ChannelConfig) validate() error {
	switch ch.Kind {
	case "", KindNone, KindStdout:
		return nil
	case KindDiscord:
		if ch.WebhookURL == "" {
			return fmt.Errorf("discord channel needs webhook_url")
		}
		return nil
	case KindTelegram:
		if ch.BotToken == "" || ch.ChatID == "" {
			return fmt.Errorf("telegram channel needs bot_token and chat_id")
		}
		return nil
	}
	return fmt.Errorf("unknown channel kind %q", ch.Kind)
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DefaultPath returns ~/.stadium-alerts.yaml.
func DefaultPath() (string, error) {
	return homedir.Expand("~/" + DefaultFileName + ".yaml")
}

// Save writes cfg to path as YAML. The file is written to a temporary file in the
// same directory and renamed into place, with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stadium-alerts-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
