// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the site-search CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/convert"
	"github.com/pdiddy/site-search/internal/logger"
	"github.com/pdiddy/site-search/internal/secrets"
	"github.com/pdiddy/site-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultUserAgent = "site-search/0.1"
	defaultAddr      = ":8080"
	defaultSiteBase  = "https://www.decodable.co"

	// defaultFetchTimeout bounds blog page and image requests. Backend
	// requests wait indefinitely unless --timeout is set.
	defaultFetchTimeout = 30 * time.Second
)

var (
	// cfg is the merged configuration: defaults, config file, environment,
	// and flags, in increasing precedence.
	cfg types.Config

	// log is ready after the root command's pre-run.
	log = zap.NewNop()

	// loadedSecrets holds keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets
)

var rootCmd = &cobra.Command{
	Use:   "site-search",
	Short: "Search widget and blog tooling for a static site",
	Long: `site-search drives the search box of a static blog against a remote
search function. It runs searches from the terminal, serves a server-rendered
search page, keeps the backend warm, and migrates posts from the old blog into
the Hugo site that hosts the widget.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}

		l, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
		if err != nil {
			return err
		}
		log = l

		s, err := secrets.Load(secrets.DefaultDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		cfg.Widget.APIKey = loadedSecrets.Get(secrets.SearchAPIKey, cfg.Widget.APIKey)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./site-search.yaml or ~/.config/site-search/site-search.yaml)")
	pf.String("search-url", "", "base URL of the search backend")
	pf.String("api-key", "", "search backend API key (default: .secrets/search-api-key)")
	pf.Duration("timeout", 0, "HTTP request timeout (default: none for the search backend, 30s for blog pages)")
	pf.String("log-env", logger.DefaultEnv, "log format: prod, dev, or local")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	bindFlag("widget.search_url", pf.Lookup("search-url"))
	bindFlag("widget.api_key", pf.Lookup("api-key"))
	bindFlag("widget.timeout", pf.Lookup("timeout"))
	bindFlag("migration.timeout", pf.Lookup("timeout"))
	bindFlag("scrape.timeout", pf.Lookup("timeout"))
	bindFlag("logging.env", pf.Lookup("log-env"))
	bindFlag("logging.level", pf.Lookup("log-level"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("widget.user_agent", defaultUserAgent)
	viper.SetDefault("widget.warmup_cooldown", types.DefaultWarmUpCooldown)
	viper.SetDefault("widget.trust_fragments", false)
	viper.SetDefault("server.addr", defaultAddr)
	viper.SetDefault("server.page", "")
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("migration.user_agent", defaultUserAgent)
	viper.SetDefault("migration.timeout", defaultFetchTimeout)
	viper.SetDefault("migration.hugo_root", ".")
	viper.SetDefault("migration.urls_file", "urls.txt")
	viper.SetDefault("migration.blog_name", convert.DefaultBlogName)
	viper.SetDefault("migration.force", false)
	viper.SetDefault("scrape.user_agent", defaultUserAgent)
	viper.SetDefault("scrape.timeout", defaultFetchTimeout)
	viper.SetDefault("scrape.site_base", defaultSiteBase)
	viper.SetDefault("scrape.output", "urls.txt")
	viper.SetDefault("scrape.author_url", "")
}

// bindFlag ties a configuration key to a flag. Flags are declared next to
// their binding, so a failure is a programming error.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("site-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "site-search"))
		}
	}

	viper.SetEnvPrefix("SITE_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
