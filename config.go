package techreader

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSessionSecretLength is enforced when configuration comes from the environment.
const MinSessionSecretLength = 32

// SiteConfig holds all configuration for a techreader site.
type SiteConfig struct {
	Name        string `env:"SITE_NAME"`
	URL         string `env:"SITE_URL"`
	Description string `env:"SITE_DESCRIPTION"`
	Author      string `env:"SITE_AUTHOR"`

	Addr string `env:"ADDR"`

	StrapiURL       string `env:"STRAPI_API_URL,required"`
	StrapiToken     string `env:"STRAPI_API_TOKEN"`
	StrapiPublicURL string `env:"STRAPI_PUBLIC_URL"` // base for /uploads/... asset URLs

	SessionSecret string `env:"SESSION_SECRET,required"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	LogLevel string `env:"LOG_LEVEL"`
	LogPath  string `env:"LOG_PATH"`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL"` // negative disables caching

	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES"`
	UploadAccept   string `env:"UPLOAD_ACCEPT"`

	SubmitRate  float64 `env:"SUBMIT_RATE"` // requests per second per IP; negative disables
	SubmitBurst int     `env:"SUBMIT_BURST"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Tech Reader"
	}
	if c.Description == "" {
		c.Description = "Articles on software, AI, and the tools we build with."
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StrapiPublicURL == "" {
		c.StrapiPublicURL = c.StrapiURL
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 60 * time.Second
	}
	if c.UploadMaxBytes == 0 {
		c.UploadMaxBytes = 5 << 20
	}
	if c.UploadAccept == "" {
		c.UploadAccept = "image/*"
	}
	if c.SubmitRate == 0 {
		c.SubmitRate = 0.2
	}
	if c.SubmitBurst == 0 {
		c.SubmitBurst = 5
	}
}

// LoadConfig reads .env (when present) and parses the environment into a SiteConfig.
func LoadConfig() (SiteConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return SiteConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return SiteConfig{}, fmt.Errorf("SESSION_SECRET must be at least %d characters", MinSessionSecretLength)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithCache replaces the response cache backend.
func WithCache(store ResponseCache) Option {
	return func(a *App) {
		a.cacheStore = store
	}
}
