package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
}

// ThemeConfig overrides the colors of a theme preset.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// SyncConfig holds cloud replica settings. An empty URL disables sync.
type SyncConfig struct {
	URL         string        `mapstructure:"url"`
	AuthToken   string        `mapstructure:"auth_token"`
	Interval    time.Duration `mapstructure:"interval"`
	QuitTimeout time.Duration `mapstructure:"quit_timeout"`
}

// Config holds the application configuration.
type Config struct {
	Storage   string      `mapstructure:"storage"`
	DataDir   string      `mapstructure:"data_dir"`
	BackupDir string      `mapstructure:"backup_dir"`
	Editor    string      `mapstructure:"editor"`
	MaxWidth  int         `mapstructure:"max_width"`
	Theme     ThemeConfig `mapstructure:"theme"`
	Sync      SyncConfig  `mapstructure:"sync"`
	Shell     ShellConfig `mapstructure:"shell"`
}

// DefaultDataDir returns the default data directory (~/.mountains/).
func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", ".mountains")
	}
	return filepath.Join(home, ".mountains")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "sqlite")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("backup_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("sync.url", "")
	v.SetDefault("sync.auth_token", "")
	v.SetDefault("sync.interval", "240s")
	v.SetDefault("sync.quit_timeout", "5s")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "⛰")
	v.SetDefault("shell.no_today_icon", "·")
	v.SetDefault("shell.streak_icon", "🔥")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mountains"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: MOUNTAINS_STORAGE, MOUNTAINS_SYNC_URL, etc.
	v.SetEnvPrefix("MOUNTAINS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Turso's own variables, kept for existing setups.
	if cfg.Sync.URL == "" {
		cfg.Sync.URL = os.Getenv("TURSO_DATABASE_URL")
	}
	if cfg.Sync.AuthToken == "" {
		cfg.Sync.AuthToken = os.Getenv("TURSO_AUTH_TOKEN")
	}

	var err error
	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("expanding data_dir: %w", err)
	}
	if cfg.BackupDir, err = homedir.Expand(cfg.BackupDir); err != nil {
		return nil, fmt.Errorf("expanding backup_dir: %w", err)
	}

	switch cfg.Storage {
	case "sqlite", "markdown":
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or markdown)", cfg.Storage)
	}

	return cfg, nil
}
