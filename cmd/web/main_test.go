package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoutesCommandListsSiteRoutes(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "routes"})
	require.NoError(t, cmd.Execute())

	listing := out.String()
	for _, route := range []string{
		"/healthz",
		"/{page}",
		"/case-studies/{index}",
		"/case-studies/{index}/demo",
		"/fragments/menu",
		"/fragments/case-studies/close",
		"/sitemap.xml",
	} {
		require.Contains(t, listing, route)
	}
}

func TestExportCommandWritesSite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))
	out := filepath.Join(dir, "dist")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "export", "--out", out})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"index.html", "services/index.html", "case-studies/0/index.html", "404.html", "static/css/site.css"} {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(out, "case-studies", "3", "index.html"))
	require.True(t, os.IsNotExist(err), "the call-to-action has no page")
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("site:\n  booking_url: not-a-url\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "routes"})
	require.ErrorContains(t, cmd.Execute(), "invalid config")
}
