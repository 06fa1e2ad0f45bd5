package techreader

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOptions(vars map[string]string) env.Options {
	return env.Options{Environment: vars}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(envOptions(map[string]string{
		"STRAPI_API_URL": "http://cms:1337",
		"SESSION_SECRET": strings.Repeat("x", 32),
	}))
	require.NoError(t, err)

	assert.Equal(t, "Tech Reader", cfg.Name)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "http://cms:1337", cfg.StrapiPublicURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.Equal(t, 0.2, cfg.SubmitRate)
	assert.Equal(t, 5, cfg.SubmitBurst)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := parseConfig(envOptions(map[string]string{
		"SITE_NAME":         "Gadget Weekly",
		"SITE_URL":          "https://gadgets.example",
		"STRAPI_API_URL":    "http://cms:1337",
		"STRAPI_PUBLIC_URL": "https://media.gadgets.example",
		"STRAPI_API_TOKEN":  "tok",
		"SESSION_SECRET":    strings.Repeat("x", 40),
		"COOKIE_SECURE":     "true",
		"CACHE_TTL":         "5m",
		"UPLOAD_MAX_BYTES":  "1048576",
		"UPLOAD_ACCEPT":     "image/png,image/jpeg",
		"SUBMIT_RATE":       "-1",
		"REDIS_URL":         "redis://localhost:6379/0",
	}))
	require.NoError(t, err)

	assert.Equal(t, "Gadget Weekly", cfg.Name)
	assert.Equal(t, "https://media.gadgets.example", cfg.StrapiPublicURL)
	assert.Equal(t, "tok", cfg.StrapiToken)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(1<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "image/png,image/jpeg", cfg.UploadAccept)
	assert.Equal(t, -1.0, cfg.SubmitRate)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := parseConfig(envOptions(map[string]string{
		"SESSION_SECRET": strings.Repeat("x", 32),
	}))
	assert.ErrorContains(t, err, "STRAPI_API_URL")

	_, err = parseConfig(envOptions(map[string]string{
		"STRAPI_API_URL": "http://cms:1337",
		"SESSION_SECRET": "too-short",
	}))
	assert.EqualError(t, err, "SESSION_SECRET must be at least 32 characters")
}

func TestNegativeSubmitRateDisablesLimiter(t *testing.T) {
	cms := okCMS(t)
	app := newTestApp(t, cms, func(cfg *SiteConfig) { cfg.SubmitRate = -1 })
	assert.Nil(t, app.limiter)
}
