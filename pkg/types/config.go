// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultWarmUpCooldown is the minimum interval between two warm-up pings.
// The backend is a function that goes cold after roughly fifteen minutes of
// inactivity.
const DefaultWarmUpCooldown = 14 * time.Minute

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WidgetConfig holds the settings of the search widget.
type WidgetConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SearchURL is the base URL of the search backend; the endpoint names
	// "ping" and "search" are appended to it.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// APIKey is sent in the X-API-Key header of every backend request.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// WarmUpCooldown is the minimum interval between warm-up pings (default 14m).
	WarmUpCooldown time.Duration `json:"warmup_cooldown" yaml:"warmup_cooldown" mapstructure:"warmup_cooldown"`

	// TrustFragments renders result fragments without escaping so that
	// highlight markup produced by the backend survives.
	TrustFragments bool `json:"trust_fragments" yaml:"trust_fragments" mapstructure:"trust_fragments"`
}

// ServerConfig holds settings for the server-rendered widget.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Page is an optional HTML page to render results into instead of the
	// built-in one. It must carry the search controls and the results
	// container ids.
	Page string `json:"page,omitempty" yaml:"page,omitempty" mapstructure:"page"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Env selects the output format: prod (JSON) or local/dev (console).
	Env string `json:"env" yaml:"env" mapstructure:"env"`

	// Level overrides the environment's default level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// MigrationConfig holds settings for the blog migrator.
type MigrationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// HugoRoot is the root of the Hugo site that receives the posts.
	HugoRoot string `json:"hugo_root" yaml:"hugo_root" mapstructure:"hugo_root"`

	// URLsFile lists the article URLs to migrate, one per line.
	URLsFile string `json:"urls_file" yaml:"urls_file" mapstructure:"urls_file"`

	// BlogName is the name of the source blog used in the attribution note.
	BlogName string `json:"blog_name" yaml:"blog_name" mapstructure:"blog_name"`

	// Force migrates URLs again even when the ledger already records them.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// ScrapeConfig holds settings for the author page scraper.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// AuthorURL is the author page listing the posts.
	AuthorURL string `json:"author_url" yaml:"author_url" mapstructure:"author_url"`

	// SiteBase is prepended to root-relative links (e.g. "https://www.decodable.co").
	SiteBase string `json:"site_base" yaml:"site_base" mapstructure:"site_base"`

	// Output is the file receiving the discovered URLs.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Config groups all command configurations.
type Config struct {
	Widget    WidgetConfig    `json:"widget" yaml:"widget" mapstructure:"widget"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging" mapstructure:"logging"`
	Migration MigrationConfig `json:"migration" yaml:"migration" mapstructure:"migration"`
	Scrape    ScrapeConfig    `json:"scrape" yaml:"scrape" mapstructure:"scrape"`
}
