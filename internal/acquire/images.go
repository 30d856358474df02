// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/httputil"
)

const (
	imageTimeout     = 30 * time.Second
	defaultImageName = "image.jpg"
)

// ImageDownloader saves article images under a Hugo site's static
// directory.
type ImageDownloader struct {
	Client   *http.Client
	HugoRoot string
	Log      *zap.Logger
}

// FetchImage downloads imgURL and returns the site path to link it with.
// When the download fails it logs a warning and returns imgURL unchanged.
func (d *ImageDownloader) FetchImage(ctx context.Context, imgURL string, date time.Time) string {
	local, err := DownloadImage(ctx, d.Client, imgURL, date, d.HugoRoot)
	if err != nil {
		log := d.Log
		if log == nil {
			log = zap.NewNop()
		}
		log.Warn("failed to download image", zap.String("url", imgURL), zap.Error(err))
		return imgURL
	}
	return local
}

// DownloadImage saves imgURL to static/images/YYYY/MM/ under hugoRoot and
// returns "/images/YYYY/MM/<file>".
func DownloadImage(ctx context.Context, client *http.Client, imgURL string, date time.Time, hugoRoot string) (string, error) {
	name, err := imageFilename(imgURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	resp, err := httputil.Get(ctx, client, imgURL, httputil.BrowserUserAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	yearMonth := date.Format("2006/01")
	path := filepath.Join(hugoRoot, "static", "images", filepath.FromSlash(yearMonth), name)
	if err := saveFile(path, data); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return "/images/" + yearMonth + "/" + name, nil
}

// imageFilename returns the unescaped last path segment of imgURL, without
// any query, or image.jpg when the URL path has none.
func imageFilename(imgURL string) (string, error) {
	u, err := url.Parse(imgURL)
	if err != nil {
		return "", fmt.Errorf("parsing image URL: %w", err)
	}

	p := u.EscapedPath()
	name := p[strings.LastIndex(p, "/")+1:]
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name, _, _ = strings.Cut(name, "?")
	if name == "" {
		name = defaultImageName
	}
	return filepath.Base(name), nil
}
