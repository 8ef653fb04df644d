package main

import (
	"github.com/spf13/cobra"

	"github.com/Elsevier11/bbt-consulting-sito/internal/export"
	"github.com/Elsevier11/bbt-consulting-sito/internal/httpserver"
	"github.com/Elsevier11/bbt-consulting-sito/public"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		out         string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the site into static files",
		Long:  "export renders every page in the default locale, the case-study overlays, 404.html, sitemap.xml and robots.txt, and copies the static assets.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			router, err := httpserver.NewRouter(a.server)
			if err != nil {
				return err
			}
			static, err := public.StaticFS()
			if err != nil {
				return err
			}
			_, err = export.Run(cmd.Context(), router, export.Options{
				OutDir:      out,
				Paths:       export.SitePaths(a.catalog.Cases(a.cfg.Site.DefaultLocale)),
				Static:      static,
				Concurrency: concurrency,
				Logger:      a.logger.Named("export"),
			})
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "dist", "output directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "pages rendered in parallel")
	return cmd
}
