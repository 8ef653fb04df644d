package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "it", cfg.Site.DefaultLocale)
	require.Equal(t, []string{"it", "en"}, cfg.Site.Locales)
	require.Contains(t, cfg.Site.BookingURL, "cal.eu")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Server.Addr, cfg.Server.Addr)
	require.Equal(t, 5*time.Minute, cfg.CMS.CacheTTL)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	body := `
server:
  addr: ":9090"
  read_timeout: 3s
site:
  base_url: "https://example.com/"
  locales: ["IT", "en", "it"]
cms:
  cache_ttl: 30s
log:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("BBT_WEB_SITE__PARTNER_URL", "https://partners.example.com")
	t.Setenv("BBT_WEB_DEV", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "unset keys keep their defaults")
	require.Equal(t, "https://example.com", cfg.Site.BaseURL)
	require.Equal(t, []string{"it", "en"}, cfg.Site.Locales)
	require.Equal(t, "https://partners.example.com", cfg.Site.PartnerURL)
	require.Equal(t, 30*time.Second, cfg.CMS.CacheTTL)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Dev)
	require.NoError(t, cfg.Validate())
}

func TestLoadHonorsPort(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Server.Addr)

	t.Setenv("BBT_WEB_SERVER__ADDR", "127.0.0.1:8000")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8000", cfg.Server.Addr, "explicit address wins over PORT")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = ""
	cfg.Site.BookingURL = "cal.eu/30min"
	cfg.Site.DefaultLocale = "de"
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "server.addr is required")
	require.Contains(t, msg, "site.booking_url")
	require.Contains(t, msg, `site.default_locale "de"`)
	require.Contains(t, msg, "invalid log.level")
}
