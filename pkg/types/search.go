// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for site-search: the records
// exchanged with the search backend, the migration ledger rows, and the
// configuration of every command.
package types

// SearchResult is one hit returned by the search backend. The backend does
// not guarantee any field; missing fields decode to the empty string and
// render as empty text.
type SearchResult struct {
	// PublicationDate is the display date of the post, passed through verbatim.
	PublicationDate string `json:"publicationdate" yaml:"publicationdate"`

	// Title is the post title.
	Title string `json:"title" yaml:"title"`

	// URI is the link target of the post.
	URI string `json:"uri" yaml:"uri"`

	// Fragment is the text snippet around the match.
	Fragment string `json:"fragment" yaml:"fragment"`
}

// SearchResponse is the envelope of a successful search call.
type SearchResponse struct {
	// Results lists the hits in backend order; it may be empty.
	Results []SearchResult `json:"results" yaml:"results"`
}
