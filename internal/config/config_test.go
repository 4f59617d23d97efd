package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.GitHub.Owner != "swipswaps" {
		t.Errorf("owner = %q, want swipswaps", cfg.GitHub.Owner)
	}
	if cfg.GitHub.BaseURL != "https://github.com" {
		t.Errorf("base_url = %q", cfg.GitHub.BaseURL)
	}
	if cfg.Verify.Timeout != 10*time.Second {
		t.Errorf("timeout = %s, want 10s", cfg.Verify.Timeout)
	}
	if !cfg.Verify.Headless {
		t.Error("headless should default to true")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "github:\n  owner: someone\nverify:\n  timeout: 5s\n  window: 800x600\n"
	if err := os.WriteFile(filepath.Join(dir, ".f2g.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.Owner != "someone" {
		t.Errorf("owner = %q, want someone", cfg.GitHub.Owner)
	}
	if cfg.Verify.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Verify.Timeout)
	}
	w, h := cfg.WindowSize()
	if w != 800 || h != 600 {
		t.Errorf("window = %dx%d, want 800x600", w, h)
	}
}

func TestRepositoryURL(t *testing.T) {
	cfg := &Config{GitHub: GitHubConfig{Owner: "swipswaps", BaseURL: "https://github.com/"}}
	got := cfg.RepositoryURL("kde-memory-guardian")
	want := "https://github.com/swipswaps/kde-memory-guardian"
	if got != want {
		t.Errorf("RepositoryURL = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty owner", func(c *Config) { c.GitHub.Owner = "" }, true},
		{"bad url", func(c *Config) { c.GitHub.BaseURL = "github.com" }, true},
		{"zero timeout", func(c *Config) { c.Verify.Timeout = 0 }, true},
		{"bad window", func(c *Config) { c.Verify.Window = "wide" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				GitHub: GitHubConfig{Owner: "swipswaps", BaseURL: "https://github.com"},
				Verify: VerifyConfig{Timeout: 10 * time.Second, Headless: true, Window: "1920x1080"},
				Log:    LogConfig{Level: "info", Format: "text"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
