// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/spf13/cobra"

	"github.com/pdiddy/site-search/internal/cooldown"
	"github.com/pdiddy/site-search/internal/search"
	"github.com/pdiddy/site-search/internal/ui"
	"github.com/pdiddy/site-search/internal/view"
	"github.com/pdiddy/site-search/internal/widget"
	"github.com/pdiddy/site-search/pkg/types"
)

const (
	formatHTML = "html"
	formatPage = "page"
	formatText = "text"
	formatJSON = "json"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run a search through the widget",
	Long: `Search sends the query to the search backend exactly as the browser widget
does and prints what the widget would show: the results fragment (html), the
whole page with the fragment in place (page), a plain-text rendering (text), or
the result records (json). Extra query parameters are passed with --param.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArray("param", nil, "extra query parameter as key=value (repeatable)")
	searchCmd.Flags().String("format", formatHTML, "output format: html, page, text, json")

	rootCmd.AddCommand(searchCmd)
}

func searchParams(args, extra []string) (search.Params, error) {
	p := search.NewParams(search.QueryKey, strings.Join(args, " "))
	for _, kv := range extra {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q: want key=value", kv)
		}
		p = p.Add(k, v)
	}
	return p, nil
}

func newSearchClient(wc types.WidgetConfig) (*search.Client, error) {
	if wc.SearchURL == "" {
		return nil, errors.New("no search backend configured: set --search-url or widget.search_url")
	}
	return search.NewClient(wc), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	extra, _ := cmd.Flags().GetStringArray("param")
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatHTML, formatPage, formatText, formatJSON:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	params, err := searchParams(args, extra)
	if err != nil {
		return err
	}
	client, err := newSearchClient(cfg.Widget)
	if err != nil {
		return err
	}

	page := ui.DefaultDocument()
	w := widget.New(client, cooldown.New(cfg.Widget.WarmUpCooldown), page,
		widget.WithRenderer(view.Renderer{TrustFragments: cfg.Widget.TrustFragments}),
		widget.WithLogger(log))

	o, err := w.Submit(cmd.Context(), params)
	if errors.Is(err, widget.ErrEmptyQuery) {
		return errors.New("empty query: nothing was sent")
	}

	if err := writeOutcome(os.Stdout, format, o, page); err != nil {
		return err
	}
	if o.Err != nil {
		return fmt.Errorf("search failed: %w", o.Err)
	}
	return nil
}

type resultRecord struct {
	Date     string `json:"publicationdate"`
	Title    string `json:"title"`
	URI      string `json:"uri"`
	Fragment string `json:"fragment"`
}

type outcomeRecord struct {
	Kind    string         `json:"kind"`
	Results []resultRecord `json:"results"`
	Error   string         `json:"error,omitempty"`
}

func writeOutcome(out io.Writer, format string, o widget.Outcome, page *ui.Document) error {
	switch format {
	case formatPage:
		html, err := page.HTML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, html)
		return err

	case formatText:
		text, err := html2text.FromString(o.HTML, html2text.Options{OmitLinks: false})
		if err != nil {
			return fmt.Errorf("rendering text: %w", err)
		}
		_, err = fmt.Fprintln(out, text)
		return err

	case formatJSON:
		rec := outcomeRecord{Kind: o.Model.Kind.String(), Results: []resultRecord{}}
		for _, it := range o.Model.Items {
			rec.Results = append(rec.Results, resultRecord(it))
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)

	default:
		_, err := fmt.Fprintln(out, o.HTML)
		return err
	}
}
