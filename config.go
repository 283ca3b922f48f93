package sitepress

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a sitepress site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // site name (default "Site")
	URL         string `yaml:"url"`         // canonical URL
	Description string `yaml:"description"` // for RSS and meta tags
	Author      string `yaml:"author"`      // for JSON-LD

	Addr         string `yaml:"addr"`          // listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/site.db")
	StaticDir    string `yaml:"static_dir"`    // user asset dir (default "public")

	AdminPassword string `yaml:"admin_password"` // required
	SessionSecret string `yaml:"session_secret"` // required
	CookieSecure  bool   `yaml:"cookie_secure"`  // set true for HTTPS

	PostCacheTTL time.Duration `yaml:"post_cache_ttl"` // default 5min
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// LoadConfig reads a YAML config file and fills unset secrets from the
// environment (ADMIN_PASSWORD, SESSION_SECRET), so the file can be committed
// without credentials.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("sitepress: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("sitepress: parse config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// ConfigFromEnv builds a SiteConfig entirely from environment variables.
func ConfigFromEnv() SiteConfig {
	cfg := SiteConfig{
		Name:         os.Getenv("SITE_NAME"),
		URL:          os.Getenv("SITE_URL"),
		Description:  os.Getenv("SITE_DESCRIPTION"),
		Author:       os.Getenv("SITE_AUTHOR"),
		Addr:         os.Getenv("SITE_ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
	}
	cfg.applyEnv()
	return cfg
}

func (c *SiteConfig) applyEnv() {
	if c.AdminPassword == "" {
		c.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if c.SessionSecret == "" {
		c.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if !c.CookieSecure {
		c.CookieSecure = os.Getenv("COOKIE_SECURE") == "true"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
