// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire fetches blog articles from the source site, extracts their
// metadata and body, downloads their images, and discovers post URLs on
// author pages.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/site-search/internal/httputil"
	"github.com/pdiddy/site-search/pkg/types"
)

// Untitled is the title of articles without an h1.
const Untitled = "Untitled"

var (
	metaDatePattern  = regexp.MustCompile(`[A-Z][a-z]+\s+\d{1,2},\s+\d{4}`)
	contentClassExpr = regexp.MustCompile(`(?i)content|post|article`)

	dateLayouts = []string{
		"2006-01-02",
		"January 2, 2006",
		"2 January 2006",
		"2006-01-02T15:04:05",
	}
)

// FetchArticle downloads the article page at rawURL and returns its HTML.
func FetchArticle(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	resp, err := httputil.Get(ctx, client, rawURL, httputil.BrowserUserAgent)
	if err != nil {
		return "", fmt.Errorf("fetching article: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading article body: %w", err)
	}
	return string(data), nil
}

// ExtractArticle parses an article page. now is used as the date when the
// page carries none.
func ExtractArticle(page, rawURL string, now time.Time) (types.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return types.Article{}, fmt.Errorf("parsing article: %w", err)
	}

	a := types.Article{URL: rawURL, Title: Untitled}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		a.Title = strings.TrimSpace(h1.Text())
	}

	a.Date = now
	if d, ok := parseDate(findDate(doc)); ok {
		a.Date = d
	}

	if sel := findContent(doc); sel != nil {
		content, err := goquery.OuterHtml(sel)
		if err != nil {
			return types.Article{}, fmt.Errorf("serializing content: %w", err)
		}
		a.Content = content
	}
	return a, nil
}

func findDate(doc *goquery.Document) string {
	meta := doc.Find("div.blog-post-header_meta-wrapper").First()
	if meta.Length() > 0 {
		if m := metaDatePattern.FindString(strings.TrimSpace(meta.Text())); m != "" {
			return m
		}
	}

	t := doc.Find("time").First()
	if t.Length() == 0 {
		return ""
	}
	if dt, ok := t.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return strings.TrimSpace(t.Text())
}

// parseDate accepts ISO dates, optionally with a time part that is ignored,
// and the long month forms used on blog pages.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if i := strings.Index(s, "T"); i >= 0 {
		s = s[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func findContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"div.text-rich-text", "article", "main"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	var found *goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, class := range strings.Fields(s.AttrOr("class", "")) {
			if contentClassExpr.MatchString(class) {
				found = s
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	body.Find("header, footer, nav, aside").Remove()
	return body
}

// saveFile writes data to path, creating parent directories.
func saveFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
