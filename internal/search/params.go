// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/url"
	"strings"
	"unicode"
)

// QueryKey is the parameter holding the user's search text.
const QueryKey = "q"

// Param is one key/value pair of a search form.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered collection of form fields. Order is preserved when
// encoding, and duplicate keys are allowed.
type Params []Param

// NewParams builds Params from alternating key/value strings. A trailing key
// without value gets the empty string.
func NewParams(kv ...string) Params {
	p := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		v := ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p = append(p, Param{Key: kv[i], Value: v})
	}
	return p
}

// Add appends a pair and returns the extended collection.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value of the first pair with the given key, or "".
func (p Params) Get(key string) string {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// Blank reports whether the search text contains nothing but whitespace,
// counting the characters a browser's \s matches: Unicode space separators,
// tab, vertical tab, form feed, the byte order mark and the line terminators.
func (p Params) Blank() bool {
	return strings.IndexFunc(p.Get(QueryKey), func(r rune) bool {
		return !isSpace(r)
	}) < 0
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Encode percent-encodes every key and value and joins the pairs with "&",
// in order. Spaces are encoded as %20, not "+".
func (p Params) Encode() string {
	parts := make([]string, 0, len(p))
	for _, kv := range p {
		parts = append(parts, escape(kv.Key)+"="+escape(kv.Value))
	}
	return strings.Join(parts, "&")
}

// ParseQuery decodes a raw query string into Params, keeping the order in
// which the fields appear. url.ParseQuery is not used because url.Values
// loses that order.
func ParseQuery(rawQuery string) (Params, error) {
	var p Params
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, err
		}
		p = append(p, Param{Key: key, Value: value})
	}
	return p, nil
}

// escape encodes s as a query component. QueryEscape already turns a literal
// "+" into %2B, so every remaining "+" stands for a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
