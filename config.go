package inkwell

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig is the bootstrap configuration: everything the process needs
// before it can reach the database. Runtime knobs (page size, session expiry,
// site chrome) live in the configuration table instead and are edited from
// the admin area.
type SiteConfig struct {
	Addr          string `yaml:"addr"`           // listen address (default ":3000")
	URL           string `yaml:"url"`            // canonical site URL
	DatabasePath  string `yaml:"database"`       // SQLite path (default "data/blog.db")
	SessionSecret string `yaml:"session_secret"` // required: cookie signing secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // set true behind HTTPS
	StaticDir     string `yaml:"static_dir"`     // user asset directory (default "static")
}

// LoadConfigFile reads a SiteConfig from a YAML file.
func LoadConfigFile(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
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

// WithRenderFunc overrides the markdown collaborator.
func WithRenderFunc(fn RenderFunc) Option {
	return func(a *App) {
		a.renderFn = fn
	}
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
