package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Elsevier11/bbt-consulting-sito/content"
	"github.com/Elsevier11/bbt-consulting-sito/internal/cms"
	"github.com/Elsevier11/bbt-consulting-sito/internal/config"
	"github.com/Elsevier11/bbt-consulting-sito/internal/httpserver"
	"github.com/Elsevier11/bbt-consulting-sito/internal/i18n"
	"github.com/Elsevier11/bbt-consulting-sito/internal/observability"
	"github.com/Elsevier11/bbt-consulting-sito/internal/render"
	"github.com/Elsevier11/bbt-consulting-sito/locales"
	"github.com/Elsevier11/bbt-consulting-sito/templates"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "bbt-web",
		Short:         "BBT Consulting website",
		Long:          "bbt-web serves the BBT Consulting website with htmx navigation and exports it as a static site.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "site.yaml", "config file path")

	cmd.AddCommand(newServeCmd(opts), newExportCmd(opts), newRoutesCmd(opts))
	return cmd
}

// app is the wiring shared by the subcommands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	engine  *render.Engine
	catalog *cms.Catalog
	server  httpserver.Config
}

func loadApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.Load(locales.FS, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, err
	}
	tmplFS := templates.FS
	if cfg.Dev {
		tmplFS = os.DirFS(cfg.TemplatesDir)
	}
	engine, err := render.New(tmplFS, bundle)
	if err != nil {
		return nil, err
	}
	catalog, err := cms.LoadCatalog(content.FS, cfg.Site.Locales, cfg.Site.BookingURL)
	if err != nil {
		return nil, err
	}
	client := cms.NewClient(cms.Options{
		BaseURL:       cfg.CMS.BaseURL,
		Content:       content.FS,
		FallbackLangs: fallbackLangs(cfg.Site),
		CacheTTL:      cfg.CMS.CacheTTL,
		Logger:        logger.Named("cms"),
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		engine:  engine,
		catalog: catalog,
		server: httpserver.Config{
			Address:      cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			Site: httpserver.SiteInfo{
				Name:          cfg.Site.Name,
				BaseURL:       cfg.Site.BaseURL,
				BookingURL:    cfg.Site.BookingURL,
				PartnerURL:    cfg.Site.PartnerURL,
				DefaultLocale: cfg.Site.DefaultLocale,
				Locales:       cfg.Site.Locales,
			},
			Translations: bundle,
			Templates:    engine,
			Catalog:      catalog,
			Content:      client,
			Dev:          cfg.Dev,
			Logger:       logger,
		},
	}, nil
}

// fallbackLangs puts the default locale first.
func fallbackLangs(site config.SiteConfig) []string {
	out := []string{site.DefaultLocale}
	for _, l := range site.Locales {
		if l != site.DefaultLocale {
			out = append(out, l)
		}
	}
	return out
}
