// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

//go:embed page.html
var defaultPage string

// Document is a Page backed by a parsed HTML document. It is safe for
// concurrent use: a search completion may update it from another goroutine
// while the caller reads it.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

// NewDocument parses an HTML page.
func NewDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// DefaultDocument returns a fresh copy of the built-in search page.
func DefaultDocument() *Document {
	d, err := NewDocument(strings.NewReader(defaultPage))
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("#" + id)
}

// SetDisabled adds or removes the disabled attribute.
func (d *Document) SetDisabled(id string, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sel := d.byID(id)
	if disabled {
		sel.SetAttr("disabled", "disabled")
	} else {
		sel.RemoveAttr("disabled")
	}
}

// SetClass replaces the class list.
func (d *Document) SetClass(id, class string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID(id).SetAttr("class", class)
}

// SetInnerHTML replaces the element's children with the parsed fragment.
func (d *Document) SetInnerHTML(id, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID(id).SetHtml(html)
}

// Disabled reports whether the element carries the disabled attribute.
func (d *Document) Disabled(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byID(id).Attr("disabled")
	return ok
}

// Class returns the element's class attribute.
func (d *Document) Class(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID(id).AttrOr("class", "")
}

// InnerHTML returns the serialized children of the element.
func (d *Document) InnerHTML(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, err := d.byID(id).Html()
	if err != nil {
		return ""
	}
	return s
}

// HTML serializes the whole page.
func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return goquery.OuterHtml(d.doc.Selection)
}
