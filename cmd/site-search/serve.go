// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/site-search/internal/cooldown"
	"github.com/pdiddy/site-search/internal/server"
	"github.com/pdiddy/site-search/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page rendered on the server",
	Long: `Serve renders the search widget on the server for visitors without
JavaScript. GET / serves the page and warms the backend up; GET /search runs the
query string against the backend and returns the page with the results.
/healthz and /metrics are served for operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newSearchClient(cfg.Widget)
		if err != nil {
			return err
		}

		var page string
		if cfg.Server.Page != "" {
			if page, err = server.LoadPage(cfg.Server.Page); err != nil {
				return err
			}
		}

		srv := server.New(client,
			cooldown.New(cfg.Widget.WarmUpCooldown),
			view.Renderer{TrustFragments: cfg.Widget.TrustFragments},
			page, log)
		return server.ListenAndServe(cmd.Context(), cfg.Server, srv.Routes(), log)
	},
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address")
	serveCmd.Flags().String("page", "", "HTML page to render results into (default: built-in page)")
	bindFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	bindFlag("server.page", serveCmd.Flags().Lookup("page"))

	rootCmd.AddCommand(serveCmd)
}
