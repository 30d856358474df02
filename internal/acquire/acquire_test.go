// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/site-search/internal/httputil"
)

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-08-06", "2024-08-06", true},
		{"2024-08-06T10:30:00Z", "2024-08-06", true},
		{"August 6, 2024", "2024-08-06", true},
		{"6 August 2024", "2024-08-06", true},
		{"06/08/2024", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("parseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestExtractArticle_BlogLayout(t *testing.T) {
	page := `<html><body>
		<nav>menu</nav>
		<h1> Streaming with Flink </h1>
		<div class="blog-post-header_meta-wrapper">By Someone · August 6, 2024 · 5 min</div>
		<div class="text-rich-text"><p>Hello</p></div>
	</body></html>`

	a, err := ExtractArticle(page, "https://example.com/blog/flink", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Streaming with Flink", a.Title)
	assert.Equal(t, "2024-08-06", a.Date.Format("2006-01-02"))
	assert.Equal(t, `<div class="text-rich-text"><p>Hello</p></div>`, a.Content)
	assert.Equal(t, "https://example.com/blog/flink", a.URL)
}

func TestExtractArticle_Fallbacks(t *testing.T) {
	tests := []struct {
		name        string
		page        string
		wantTitle   string
		wantDate    string
		wantContent string
		notContent  string
	}{
		{
			name:        "time datetime and article",
			page:        `<h1>T</h1><time datetime="2023-01-15T08:00:00">Jan</time><article><p>a</p></article><main>m</main>`,
			wantTitle:   "T",
			wantDate:    "2023-01-15",
			wantContent: "<article><p>a</p></article>",
		},
		{
			name:        "time text and main",
			page:        `<time>15 January 2023</time><main><p>m</p></main>`,
			wantTitle:   Untitled,
			wantDate:    "2023-01-15",
			wantContent: "<main><p>m</p></main>",
		},
		{
			name:        "class match",
			page:        `<div class="wrapper"><div class="Post-Body"><p>x</p></div></div>`,
			wantTitle:   Untitled,
			wantDate:    "2026-05-04",
			wantContent: `<div class="Post-Body"><p>x</p></div>`,
		},
		{
			name:        "body without chrome",
			page:        `<header>h</header><p>text</p><aside>side</aside><footer>f</footer>`,
			wantTitle:   Untitled,
			wantDate:    "2026-05-04",
			wantContent: "<p>text</p>",
			notContent:  "side",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ExtractArticle(tt.page, "https://example.com/blog/x", fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, a.Title)
			assert.Equal(t, tt.wantDate, a.Date.Format("2006-01-02"))
			assert.Contains(t, a.Content, tt.wantContent)
			if tt.notContent != "" {
				assert.NotContains(t, a.Content, tt.notContent)
			}
		})
	}
}

func TestFetchArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blog/ok" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, httputil.BrowserUserAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, "<h1>Ok</h1>")
	}))
	defer srv.Close()

	body, err := FetchArticle(context.Background(), srv.Client(), srv.URL+"/blog/ok")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Ok</h1>", body)

	_, err = FetchArticle(context.Background(), srv.Client(), srv.URL+"/blog/missing")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestImageFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/a/b/diagram.png", "diagram.png"},
		{"https://cdn.example.com/a/my%20chart.png?w=800", "my chart.png"},
		{"https://cdn.example.com/a/100%25.jpg", "100%.jpg"},
		{"https://cdn.example.com/a/", defaultImageName},
		{"https://cdn.example.com", defaultImageName},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := imageFilename(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	root := t.TempDir()
	date := time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC)

	got, err := DownloadImage(context.Background(), srv.Client(), srv.URL+"/img/my%20chart.png?x=1", date, root)
	require.NoError(t, err)
	assert.Equal(t, "/images/2024/08/my chart.png", got)

	data, err := os.ReadFile(filepath.Join(root, "static", "images", "2024", "08", "my chart.png"))
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(data))

	core, logs := observer.New(zapcore.WarnLevel)
	d := &ImageDownloader{Client: srv.Client(), HugoRoot: root, Log: zap.New(core)}
	missing := srv.URL + "/img/missing.png"
	assert.Equal(t, missing, d.FetchImage(context.Background(), missing, date))
	assert.Equal(t, 1, logs.FilterMessage("failed to download image").Len())
}

func TestPostLinks(t *testing.T) {
	page := `<html><body>
		<a href="/blog/kafka-connect">KC</a>
		<a href="/blog/kafka-connect">KC again</a>
		<a href="https://www.example.co/blog/flink-sql">Flink</a>
		<a href="/blog/author/someone">Author</a>
		<a href="/blog/category/streaming">Category</a>
		<a href="relative/blog/post">Relative</a>
		<a href="/blog/">Index</a>
		<a href="/about">About</a>
	</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	got := PostLinks(doc, "https://www.example.co/")
	assert.Equal(t, []string{
		"https://www.example.co/blog/flink-sql",
		"https://www.example.co/blog/kafka-connect",
	}, got)
}

func TestScrapeAuthorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/blog/b">b</a><a href="/blog/a">a</a>`)
	}))
	defer srv.Close()

	got, err := ScrapeAuthorPage(context.Background(), srv.Client(), srv.URL+"/blog-author/x", "https://site.test")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://site.test/blog/a", "https://site.test/blog/b"}, got)
}

func TestURLsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, WriteURLs(path, []string{"https://a.test/1", "https://a.test/2"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://a.test/1\nhttps://a.test/2\n", string(data))

	require.NoError(t, os.WriteFile(path, []byte("  https://a.test/1 \n\n\thttps://a.test/2\n   \n"), 0o644))
	got, err := ReadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test/1", "https://a.test/2"}, got)

	_, err = ReadURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
