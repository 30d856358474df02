// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/site-search/internal/acquire"
	"github.com/pdiddy/site-search/internal/httputil"
	"github.com/pdiddy/site-search/internal/migrate"
	"github.com/pdiddy/site-search/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [urls...]",
	Short: "Migrate blog posts into the Hugo site",
	Long: `Migrate fetches blog articles, converts them to AsciiDoc with one sentence
per line, downloads their images into static/images/YYYY/MM/, and writes draft
posts to content/post/. URLs come from the arguments or, when none are given,
from the --urls file. Migrated URLs are recorded in .migrator/migrations.db in
the Hugo site and skipped on later runs unless --force is set.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("urls", "urls.txt", "file listing article URLs, one per line")
	migrateCmd.Flags().String("hugo-root", ".", "root directory of the Hugo site")
	migrateCmd.Flags().String("blog-name", "", "name of the source blog in the attribution note")
	migrateCmd.Flags().Bool("force", false, "migrate URLs again even when already recorded")
	bindFlag("migration.urls_file", migrateCmd.Flags().Lookup("urls"))
	bindFlag("migration.hugo_root", migrateCmd.Flags().Lookup("hugo-root"))
	bindFlag("migration.force", migrateCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	mc := cfg.Migration
	if name, _ := cmd.Flags().GetString("blog-name"); name != "" {
		mc.BlogName = name
	}

	urls := args
	if len(urls) == 0 {
		var err error
		if urls, err = acquire.ReadURLs(mc.URLsFile); err != nil {
			return err
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to migrate")
	}

	ledger, err := store.Open(mc.HugoRoot)
	if err != nil {
		return err
	}
	defer ledger.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Processing %d article(s)...\n", len(urls))
	m := migrate.New(httputil.NewClient(mc.Timeout), mc, ledger, log, migrate.WithOutput(cmd.OutOrStdout()))
	result := m.Migrate(cmd.Context(), urls)
	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed migration", result.Failed)
	}
	return nil
}
