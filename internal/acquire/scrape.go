// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/site-search/internal/httputil"
)

// ScrapeAuthorPage returns the sorted, de-duplicated blog post URLs linked
// from an author page. Only the posts present in the initial page are found;
// posts behind a "load more" button are not.
func ScrapeAuthorPage(ctx context.Context, client *http.Client, authorURL, siteBase string) ([]string, error) {
	resp, err := httputil.Get(ctx, client, authorURL, httputil.BrowserUserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching author page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing author page: %w", err)
	}
	return PostLinks(doc, siteBase), nil
}

// PostLinks collects links to blog posts in doc. Root-relative links are
// resolved against siteBase; other relative links are ignored.
func PostLinks(doc *goquery.Document, siteBase string) []string {
	siteBase = strings.TrimSuffix(siteBase, "/")
	excluded := map[string]bool{
		siteBase + "/blog":  true,
		siteBase + "/blog/": true,
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !strings.Contains(href, "/blog/") ||
			strings.Contains(href, "/blog/author") ||
			strings.Contains(href, "/blog/category") {
			return
		}

		var full string
		switch {
		case strings.HasPrefix(href, "/"):
			full = siteBase + href
		case strings.HasPrefix(href, "http"):
			full = href
		default:
			return
		}
		if !excluded[full] {
			seen[full] = true
		}
	})

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// WriteURLs writes one URL per line to path.
func WriteURLs(path string, urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadURLs reads the non-blank lines of path, trimmed.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return urls, nil
}
