// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Migration records one blog post that was migrated into the Hugo site.
type Migration struct {
	// URL is the canonical URL of the source article.
	URL string `json:"url" yaml:"url"`

	// Slug is the post filename without extension.
	Slug string `json:"slug" yaml:"slug"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PostPath is the path of the written .adoc file.
	PostPath string `json:"post_path" yaml:"post_path"`

	// MigratedAt is when the post was written.
	MigratedAt time.Time `json:"migrated_at" yaml:"migrated_at"`
}

// Article is a blog post fetched from the source site.
type Article struct {
	// URL is where the article was fetched from.
	URL string `json:"url" yaml:"url"`

	// Title is the text of the first heading, or "Untitled".
	Title string `json:"title" yaml:"title"`

	// Date is the publication date. Articles without a recognizable date get
	// the time of extraction.
	Date time.Time `json:"date" yaml:"date"`

	// Content is the HTML of the article body.
	Content string `json:"-" yaml:"-"`
}
