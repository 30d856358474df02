// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view turns search outcomes into a view model and renders it as the
// HTML fragment shown in the results container. Nothing here touches the
// network or a page.
package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pdiddy/site-search/pkg/types"
)

// Kind identifies which of the three mutually exclusive fragments a model
// renders to.
type Kind int

const (
	// KindResults lists one block per hit.
	KindResults Kind = iota
	// KindEmpty is the "no results found" block.
	KindEmpty
	// KindFailure is the generic technical error block.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindResults:
		return "results"
	case KindEmpty:
		return "empty"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	resultsHeading = "Search Results"
	failureHeading = "Uh oh"
	emptyMessage   = "No results found"
	failureMessage = "A technical error occurred; Please try again later."
)

// Item is one rendered hit.
type Item struct {
	Date     string
	Title    string
	URI      string
	Fragment string
}

// Model is everything the renderer needs.
type Model struct {
	Kind    Kind
	Heading string
	Items   []Item
	Message string
}

// FromResponse maps a decoded search response to a model. Items keep the
// backend order.
func FromResponse(resp types.SearchResponse) Model {
	if len(resp.Results) == 0 {
		return Model{Kind: KindEmpty, Heading: resultsHeading, Message: emptyMessage}
	}
	items := make([]Item, len(resp.Results))
	for i, r := range resp.Results {
		items[i] = Item{
			Date:     r.PublicationDate,
			Title:    r.Title,
			URI:      r.URI,
			Fragment: r.Fragment,
		}
	}
	return Model{Kind: KindResults, Heading: resultsHeading, Items: items}
}

// FailureHTML is the rendered failure fragment, for callers that cannot
// render.
const FailureHTML = `<div class="search-results"><h1 class="title">` + failureHeading +
	`</h1><p>` + failureMessage + `</p></div>`

// Failure returns the model shown for every kind of failed request.
func Failure() Model {
	return Model{Kind: KindFailure, Heading: failureHeading, Message: failureMessage}
}

// No whitespace between elements; the blog stylesheet targets these classes.
var fragmentTemplate = template.Must(template.New("results").Parse(
	`<div class="search-results"><h1 class="title">{{.Heading}}</h1>` +
		`{{if .Failure}}<p>{{.Message}}</p>` +
		`{{else if .Empty}}<div class="post">{{.Message}}</div>` +
		`{{else}}{{range .Items}}` +
		`<div class="post">` +
		`<div class="meta">{{.Date}}</div>` +
		`<h4 class="summary"><a href="{{.URI}}">{{.Title}}</a></h4>` +
		`<div><span class="description">{{.Fragment}}</span></div>` +
		`</div>` +
		`{{end}}{{end}}` +
		`</div>`,
))

// Renderer renders models to HTML fragments.
type Renderer struct {
	// TrustFragments inserts fragments without escaping, for backends that
	// return highlight markup such as <b>term</b>.
	TrustFragments bool
}

// renderItem mirrors Item with a fragment that may be pre-trusted markup.
type renderItem struct {
	Date     string
	Title    string
	URI      string
	Fragment any
}

// Render produces the fragment for m. Text is escaped for its HTML context;
// link targets with unsafe schemes are replaced.
func (r Renderer) Render(m Model) (string, error) {
	data := struct {
		Failure bool
		Empty   bool
		Heading string
		Message string
		Items   []renderItem
	}{
		Failure: m.Kind == KindFailure,
		Empty:   m.Kind == KindEmpty,
		Heading: m.Heading,
		Message: m.Message,
	}
	for _, it := range m.Items {
		var fragment any = it.Fragment
		if r.TrustFragments {
			fragment = template.HTML(it.Fragment)
		}
		data.Items = append(data.Items, renderItem{
			Date:     it.Date,
			Title:    it.Title,
			URI:      it.URI,
			Fragment: fragment,
		})
	}

	var buf bytes.Buffer
	if err := fragmentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s view: %w", m.Kind, err)
	}
	return buf.String(), nil
}
