// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsBlank(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   bool
	}{
		{"empty string", NewParams("q", ""), true},
		{"spaces", NewParams("q", "   "), true},
		{"tabs and newlines", NewParams("q", "\t\n \r"), true},
		{"vertical tab and form feed", NewParams("q", "\v\f"), true},
		{"no-break and ideographic spaces", NewParams("q", "\u00a0\u3000"), true},
		{"byte order mark", NewParams("q", "\ufeff"), true},
		{"line and paragraph separators", NewParams("q", "\u2028\u2029"), true},
		{"next line is text", NewParams("q", "\u0085"), false},
		{"no q key", NewParams("lang", "en"), true},
		{"word", NewParams("q", "debezium"), false},
		{"padded word", NewParams("q", "  cdc  "), false},
		{"first q wins", NewParams("q", "", "q", "late"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Blank())
		})
	}
}

func TestParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"single", NewParams("q", "flink"), "q=flink"},
		{"space as %20", NewParams("q", "change data capture"), "q=change%20data%20capture"},
		{"plus and ampersand", NewParams("q", "c++ & java"), "q=c%2B%2B%20%26%20java"},
		{"order preserved", NewParams("z", "1", "a", "2", "q", "x"), "z=1&a=2&q=x"},
		{"keys encoded", NewParams("a b", "c=d"), "a%20b=c%3Dd"},
		{"unicode", NewParams("q", "größe"), "q=gr%C3%B6%C3%9Fe"},
		{"empty", Params{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParseQuery_KeepsOrder(t *testing.T) {
	p, err := ParseQuery("z=1&q=kafka+streams&&a=%26")
	require.NoError(t, err)

	assert.Equal(t, Params{
		{Key: "z", Value: "1"},
		{Key: "q", Value: "kafka streams"},
		{Key: "a", Value: "&"},
	}, p)
}

func TestParseQuery_InvalidEscape(t *testing.T) {
	_, err := ParseQuery("q=%zz")
	assert.Error(t, err)
}

func TestNewParams_OddArguments(t *testing.T) {
	p := NewParams("q", "x", "dangling")
	assert.Equal(t, "", p.Get("dangling"))
	assert.Len(t, p, 2)
}
