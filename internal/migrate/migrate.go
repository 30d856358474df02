// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package migrate moves blog articles into a Hugo site: fetch, extract,
// convert to AsciiDoc, write the post, and record it in the ledger.
package migrate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/acquire"
	"github.com/pdiddy/site-search/internal/convert"
	"github.com/pdiddy/site-search/pkg/types"
)

// Ledger remembers which URLs have been migrated. *store.Store implements it.
type Ledger interface {
	Has(ctx context.Context, url string) (bool, error)
	Record(ctx context.Context, m types.Migration) error
}

// BatchResult holds the outcome of a migration run.
type BatchResult struct {
	Migrated int
	Skipped  int
	Failed   int
	Posts    []types.Migration
}

// Total returns the number of URLs processed.
func (r BatchResult) Total() int {
	return r.Migrated + r.Skipped + r.Failed
}

// HasFailures reports whether any URL failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Migrator runs migrations into one Hugo site.
type Migrator struct {
	client *http.Client
	cfg    types.MigrationConfig
	ledger Ledger
	images convert.ImageFetcher
	log    *zap.Logger
	out    io.Writer
	now    func() time.Time
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithImages replaces the image downloader.
func WithImages(f convert.ImageFetcher) Option {
	return func(m *Migrator) { m.images = f }
}

// WithClock sets the time source used for undated articles and ledger
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Migrator) { m.now = now }
}

// WithOutput sets where per-article progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(m *Migrator) { m.out = w }
}

// New returns a Migrator. Images are downloaded into the site's static
// directory with client unless WithImages says otherwise.
func New(client *http.Client, cfg types.MigrationConfig, ledger Ledger, log *zap.Logger, opts ...Option) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Migrator{
		client: client,
		cfg:    cfg,
		ledger: ledger,
		log:    log,
		out:    io.Discard,
		now:    time.Now,
		images: &acquire.ImageDownloader{Client: client, HugoRoot: cfg.HugoRoot, Log: log},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// MigrateOne migrates a single article. It skips URLs the ledger already
// holds unless the configuration forces a rerun.
func (m *Migrator) MigrateOne(ctx context.Context, url string) (rec types.Migration, skipped bool, err error) {
	if !m.cfg.Force {
		done, err := m.ledger.Has(ctx, url)
		if err != nil {
			return types.Migration{}, false, err
		}
		if done {
			return types.Migration{}, true, nil
		}
	}

	page, err := acquire.FetchArticle(ctx, m.client, url)
	if err != nil {
		return types.Migration{}, false, err
	}

	a, err := acquire.ExtractArticle(page, url, m.now())
	if err != nil {
		return types.Migration{}, false, err
	}
	m.log.Debug("extracted article",
		zap.String("url", url),
		zap.String("title", a.Title),
		zap.String("date", a.Date.Format("2006-01-02")))

	content, err := convert.ToAsciiDoc(ctx, a, m.images)
	if err != nil {
		return types.Migration{}, false, fmt.Errorf("converting %s: %w", url, err)
	}

	path, err := convert.WritePost(m.cfg.HugoRoot, m.cfg.BlogName, a, content)
	if err != nil {
		return types.Migration{}, false, err
	}

	rec = types.Migration{
		URL:        url,
		Slug:       convert.Slug(a.Title),
		Title:      a.Title,
		PostPath:   path,
		MigratedAt: m.now(),
	}
	if err := m.ledger.Record(ctx, rec); err != nil {
		return types.Migration{}, false, err
	}
	return rec, false, nil
}

// Migrate processes urls in order, continuing after individual failures.
// It stops early when ctx is cancelled; the remaining URLs are not counted.
func (m *Migrator) Migrate(ctx context.Context, urls []string) BatchResult {
	var result BatchResult
	for _, url := range urls {
		if ctx.Err() != nil {
			m.log.Warn("migration interrupted", zap.Int("remaining", len(urls)-result.Total()))
			break
		}

		rec, skipped, err := m.MigrateOne(ctx, url)
		switch {
		case err != nil:
			m.log.Error("migration failed", zap.String("url", url), zap.Error(err))
			fmt.Fprintf(m.out, "failed:   %s (%v)\n", url, err)
			result.Failed++
		case skipped:
			fmt.Fprintf(m.out, "skipped:  %s (already migrated)\n", url)
			result.Skipped++
		default:
			m.log.Info("migrated article", zap.String("url", url), zap.String("post", rec.PostPath))
			fmt.Fprintf(m.out, "migrated: %s -> %s\n", url, rec.PostPath)
			result.Migrated++
			result.Posts = append(result.Posts, rec)
		}
	}
	fmt.Fprintf(m.out, "\nBatch summary: %d migrated, %d skipped, %d failed (total: %d)\n",
		result.Migrated, result.Skipped, result.Failed, result.Total())
	return result
}
