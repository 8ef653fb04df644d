// Package config loads the site configuration from defaults, an optional YAML
// file and BBT_WEB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: BBT_WEB_SITE__BOOKING_URL sets site.booking_url.
const EnvPrefix = "BBT_WEB_"

// Config is the top-level configuration, corresponding to site.yaml.
type Config struct {
	Server       ServerConfig `yaml:"server" koanf:"server"`
	Site         SiteConfig   `yaml:"site" koanf:"site"`
	CMS          CMSConfig    `yaml:"cms" koanf:"cms"`
	Log          LogConfig    `yaml:"log" koanf:"log"`
	Dev          bool         `yaml:"dev" koanf:"dev"`
	TemplatesDir string       `yaml:"templates_dir" koanf:"templates_dir"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" koanf:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
}

// SiteConfig holds the public facts about the site and its external links.
type SiteConfig struct {
	Name          string   `yaml:"name" koanf:"name"`
	BaseURL       string   `yaml:"base_url" koanf:"base_url"`
	BookingURL    string   `yaml:"booking_url" koanf:"booking_url"`
	PartnerURL    string   `yaml:"partner_url" koanf:"partner_url"`
	DefaultLocale string   `yaml:"default_locale" koanf:"default_locale"`
	Locales       []string `yaml:"locales" koanf:"locales"`
}

// CMSConfig points at an optional remote content service. An empty BaseURL
// serves the embedded content only.
type CMSConfig struct {
	BaseURL  string        `yaml:"base_url" koanf:"base_url"`
	CacheTTL time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Site: SiteConfig{
			Name:          "BBT Consulting",
			BaseURL:       "https://www.bbt-consulting.it",
			BookingURL:    "https://www.cal.eu/paolopedron/30min?user=paolopedron&overlayCalendar=true",
			PartnerURL:    "https://nis2.bbt-consulting.it",
			DefaultLocale: "it",
			Locales:       []string{"it", "en"},
		},
		CMS: CMSConfig{
			CacheTTL: 5 * time.Minute,
		},
		Log:          LogConfig{Level: "info"},
		TemplatesDir: "templates",
	}
}

// Load reads configuration from the YAML file at path, when it exists, then
// overlays environment variables. PORT is honored for the listen address
// unless BBT_WEB_SERVER__ADDR is set.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !k.Exists("server.addr") {
		cfg.Server.Addr = ":" + port
	}
	cfg.normalize()
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func (c *Config) normalize() {
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Site.DefaultLocale = strings.ToLower(strings.TrimSpace(c.Site.DefaultLocale))
	locales := make([]string, 0, len(c.Site.Locales))
	for _, l := range c.Site.Locales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(locales, l) {
			locales = append(locales, l)
		}
	}
	c.Site.Locales = locales
	c.CMS.BaseURL = strings.TrimRight(strings.TrimSpace(c.CMS.BaseURL), "/")
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values. All
// problems are reported at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}
	if strings.TrimSpace(c.Site.Name) == "" {
		errs = append(errs, errors.New("site.name is required"))
	}
	for key, raw := range map[string]string{
		"site.base_url":    c.Site.BaseURL,
		"site.booking_url": c.Site.BookingURL,
		"site.partner_url": c.Site.PartnerURL,
	} {
		if err := checkAbsURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.CMS.BaseURL != "" {
		if err := checkAbsURL(c.CMS.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("cms.base_url: %w", err))
		}
	}
	if c.CMS.CacheTTL < 0 {
		errs = append(errs, errors.New("cms.cache_ttl must be non-negative"))
	}
	if len(c.Site.Locales) == 0 {
		errs = append(errs, errors.New("site.locales must list at least one locale"))
	} else if !slices.Contains(c.Site.Locales, c.Site.DefaultLocale) {
		errs = append(errs, fmt.Errorf("site.default_locale %q is not in site.locales", c.Site.DefaultLocale))
	}
	if c.Log.Level != "" && !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

func checkAbsURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}
