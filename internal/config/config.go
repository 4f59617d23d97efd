package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full folder2github configuration.
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	Verify VerifyConfig `mapstructure:"verify"`
	Log    LogConfig    `mapstructure:"log"`
}

// GitHubConfig locates the hosted repositories the verifier checks.
type GitHubConfig struct {
	Owner   string `mapstructure:"owner"`
	BaseURL string `mapstructure:"base_url"`
}

// VerifyConfig controls the browser verification session.
type VerifyConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Headless bool          `mapstructure:"headless"`
	Window   string        `mapstructure:"window"` // WIDTHxHEIGHT
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .f2g.yaml from the working directory or home (optional) plus
// F2G_* environment overrides, and returns the merged configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".f2g")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("F2G")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("github.owner", "swipswaps")
	v.SetDefault("github.base_url", "https://github.com")
	v.SetDefault("verify.timeout", 10*time.Second)
	v.SetDefault("verify.headless", true)
	v.SetDefault("verify.window", "1920x1080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RepositoryURL joins base URL, owner and repo name.
func (c *Config) RepositoryURL(repoName string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(c.GitHub.BaseURL, "/"), c.GitHub.Owner, repoName)
}

// Validate rejects values the commands cannot work with.
func (c *Config) Validate() error {
	if c.GitHub.Owner == "" {
		return fmt.Errorf("github.owner is required")
	}
	if !strings.HasPrefix(c.GitHub.BaseURL, "http://") && !strings.HasPrefix(c.GitHub.BaseURL, "https://") {
		return fmt.Errorf("github.base_url must be an http(s) URL, got %q", c.GitHub.BaseURL)
	}
	if c.Verify.Timeout <= 0 {
		return fmt.Errorf("verify.timeout must be positive, got %s", c.Verify.Timeout)
	}
	w, h, ok := strings.Cut(c.Verify.Window, "x")
	if !ok || w == "" || h == "" {
		return fmt.Errorf("verify.window must be WIDTHxHEIGHT, got %q", c.Verify.Window)
	}
	return nil
}

// WindowSize parses verify.window into width and height.
func (c *Config) WindowSize() (int, int) {
	var w, h int
	fmt.Sscanf(c.Verify.Window, "%dx%d", &w, &h)
	if w <= 0 || h <= 0 {
		return 1920, 1080
	}
	return w, h
}
