package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/Elsevier11/bbt-consulting-sito/internal/httpserver"
)

func newRoutesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			router, err := httpserver.NewRouter(a.server)
			if err != nil {
				return err
			}
			return chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				route = strings.Replace(route, "/*/", "/", -1)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", method, route)
				return err
			})
		},
	}
}
