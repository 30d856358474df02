// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/acquire"
	"github.com/pdiddy/site-search/internal/httputil"
)

const previewURLs = 5

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect blog post URLs from an author page",
	Long: `Scrape reads an author page of the source blog and writes the post URLs it
links to, sorted and de-duplicated, one per line. Only posts present in the
initial page are found. The output feeds the migrate command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cfg.Scrape
		if sc.AuthorURL == "" {
			return errors.New("no author page given: set --author-url")
		}

		client := httputil.NewClient(sc.Timeout)
		urls, err := acquire.ScrapeAuthorPage(cmd.Context(), client, sc.AuthorURL, sc.SiteBase)
		if err != nil {
			return err
		}
		if err := acquire.WriteURLs(sc.Output, urls); err != nil {
			return err
		}
		log.Info("scraped author page", zap.String("url", sc.AuthorURL), zap.Int("posts", len(urls)))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d blog posts, written to %s\n", len(urls), sc.Output)
		for i, u := range urls {
			if i == previewURLs {
				fmt.Fprintf(out, "  ... and %d more\n", len(urls)-previewURLs)
				break
			}
			fmt.Fprintf(out, "  %s\n", u)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().String("author-url", "", "author page listing the posts")
	scrapeCmd.Flags().String("site", defaultSiteBase, "site base URL for root-relative links")
	scrapeCmd.Flags().String("output", "urls.txt", "file receiving the URLs")
	bindFlag("scrape.author_url", scrapeCmd.Flags().Lookup("author-url"))
	bindFlag("scrape.site_base", scrapeCmd.Flags().Lookup("site"))
	bindFlag("scrape.output", scrapeCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(scrapeCmd)
}
