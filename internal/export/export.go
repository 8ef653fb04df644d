// Package export renders the site into a directory of static files that any
// file server can host. Pages are rendered through the regular HTTP handler
// with the export header set, so the markup works without JavaScript.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Elsevier11/bbt-consulting-sito/internal/middleware"
	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

const (
	defaultConcurrency = 4
	notFoundProbe      = "/__export-not-found__"
)

// Options configures Run.
type Options struct {
	// OutDir receives the exported tree. It is created when missing.
	OutDir string
	// Paths lists the URL paths to render; see SitePaths.
	Paths []string
	// Static is copied below OutDir/static when set.
	Static      fs.FS
	Concurrency int
	Logger      *zap.Logger
}

// Result summarises an export.
type Result struct {
	Pages  int
	Assets int
}

// SitePaths lists every page plus the overlay URL of each standard case study.
func SitePaths(cases []view.CaseStudy) []string {
	var out []string
	for _, p := range view.Pages() {
		out = append(out, p.Path())
	}
	for i, c := range cases {
		if _, ok := c.(view.StandardCase); ok {
			out = append(out, fmt.Sprintf("%s/%d", view.CaseStudies.Path(), i))
		}
	}
	return out
}

// Run renders opts.Paths through h and writes them below opts.OutDir, along
// with 404.html, sitemap.xml, robots.txt and the static assets.
func Run(ctx context.Context, h http.Handler, opts Options) (Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", opts.OutDir, err)
	}

	var pages atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	jobs := make([]job, 0, len(opts.Paths)+3)
	for _, p := range opts.Paths {
		jobs = append(jobs, job{path: p, file: pageFile(p), status: http.StatusOK})
	}
	jobs = append(jobs,
		job{path: notFoundProbe, file: "404.html", status: http.StatusNotFound},
		job{path: "/sitemap.xml", file: "sitemap.xml", status: http.StatusOK},
		job{path: "/robots.txt", file: "robots.txt", status: http.StatusOK},
	)
	for _, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			if err := render(egCtx, h, j, opts.OutDir); err != nil {
				return err
			}
			pages.Add(1)
			logger.Debug("exported page", zap.String("path", j.path), zap.String("file", j.file))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: int(pages.Load())}
	if opts.Static != nil {
		n, err := copyTree(opts.Static, filepath.Join(opts.OutDir, "static"))
		if err != nil {
			return res, err
		}
		res.Assets = n
	}
	logger.Info("export completed",
		zap.String("out", opts.OutDir),
		zap.Int("pages", res.Pages),
		zap.Int("assets", res.Assets),
	)
	return res, nil
}

type job struct {
	path   string
	file   string
	status int
}

func render(ctx context.Context, h http.Handler, j job, outDir string) error {
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, j.path, nil)
	req.Header.Set(middleware.ExportHeader, "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != j.status {
		return fmt.Errorf("export %s: status %d, want %d", j.path, rec.Code, j.status)
	}
	return writeFile(filepath.Join(outDir, filepath.FromSlash(j.file)), rec.Body.Bytes())
}

// pageFile maps a URL path to the index.html serving it.
func pageFile(p string) string {
	clean := strings.Trim(path.Clean("/"+p), "/")
	if clean == "" {
		return "index.html"
	}
	return clean + "/index.html"
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func copyTree(src fs.FS, dst string) (int, error) {
	n := 0
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := src.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		n++
		return out.Close()
	})
	if err != nil {
		return n, fmt.Errorf("export: copy assets: %w", err)
	}
	return n, nil
}
