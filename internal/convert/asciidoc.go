// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns extracted article HTML into AsciiDoc and writes Hugo
// posts.
package convert

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/site-search/pkg/types"
)

// NoContent is the AsciiDoc body of articles whose content could not be found.
const NoContent = "Content not found"

// ImageFetcher stores an article image locally and returns the path to link
// it with. Implementations return the original URL when storing fails.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imgURL string, date time.Time) string
}

var codeLanguages = map[string]bool{
	"sql": true, "yaml": true, "bash": true, "python": true,
	"java": true, "javascript": true, "json": true, "shell": true,
}

var invisibles = strings.NewReplacer(
	"\u2502", "|", // box drawing vertical
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// ToAsciiDoc converts the article content to AsciiDoc, one sentence per
// line. Images are handed to images; a nil fetcher keeps the source URLs.
func ToAsciiDoc(ctx context.Context, a types.Article, images ImageFetcher) (string, error) {
	if strings.TrimSpace(a.Content) == "" {
		return NoContent, nil
	}

	// Inline code on the source blog is entity-escaped markup.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(a.Content)))
	if err != nil {
		return "", fmt.Errorf("parsing content: %w", err)
	}

	c := &converter{ctx: ctx, article: a, images: images}
	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		b.WriteString(c.node(n))
	}

	return strings.TrimSpace(SentencePerLine(invisibles.Replace(b.String()))), nil
}

type converter struct {
	ctx     context.Context
	article types.Article
	images  ImageFetcher
}

func (c *converter) children(n *html.Node) string {
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b.WriteString(c.node(ch))
	}
	return b.String()
}

func (c *converter) node(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
	case html.DocumentNode:
		return c.children(n)
	default:
		return ""
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		if text := strings.TrimSpace(textOf(n)); text != "" {
			return "\n" + strings.Repeat("=", level+1) + " " + text + "\n"
		}
		return ""

	case atom.P:
		if text := strings.TrimSpace(c.children(n)); text != "" {
			return text + "\n\n"
		}
		return ""

	case atom.Pre:
		return sourceBlock(n)

	case atom.Code:
		return "`" + textOf(n) + "`"

	case atom.Span:
		if hasClass(n, "inline-code") {
			return "`" + textOf(n) + "`"
		}
		return c.children(n)

	case atom.Blockquote:
		text := strings.TrimSpace(c.children(n))
		if text == "" {
			return ""
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if line == "" {
				lines[i] = ">"
			} else {
				lines[i] = "> " + line
			}
		}
		return "\n" + strings.Join(lines, "\n") + "\n"

	case atom.Ul, atom.Ol:
		return c.list(n)

	case atom.Img:
		return c.image(n)

	case atom.A:
		href := attr(n, "href")
		text := strings.TrimSpace(textOf(n))
		if href != "" && text != "" {
			return " link:" + href + "[" + text + "] "
		}
		return text

	case atom.Strong, atom.B:
		return "*" + strings.TrimSpace(textOf(n)) + "*"

	case atom.Em, atom.I:
		return "_" + strings.TrimSpace(textOf(n)) + "_"

	case atom.Br:
		return " +\n"

	case atom.Script, atom.Style, atom.Noscript:
		return ""
	}

	return c.children(n)
}

func (c *converter) list(n *html.Node) string {
	prefix := "*"
	if n.DataAtom == atom.Ol {
		prefix = "."
	}

	var b strings.Builder
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}

		var text strings.Builder
		var nested []*html.Node
		for ch := li.FirstChild; ch != nil; ch = ch.NextSibling {
			if isList(ch) {
				nested = append(nested, ch)
				continue
			}
			text.WriteString(c.node(ch))
		}
		if t := strings.TrimSpace(text.String()); t != "" {
			b.WriteString(prefix + " " + t + "\n")
		}
		for _, l := range nested {
			b.WriteString(c.node(l))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (c *converter) image(n *html.Node) string {
	src := attr(n, "src")
	if src == "" {
		return ""
	}
	if !strings.HasPrefix(src, "http") {
		src = resolve(c.article.URL, src)
	}

	local := src
	if c.images != nil {
		local = c.images.FetchImage(c.ctx, src, c.article.Date)
	}
	return "\nimage::" + local + "[" + attr(n, "alt") + "]\n"
}

func sourceBlock(pre *html.Node) string {
	header := "[source]"
	code := textOf(pre)
	if el := find(pre, atom.Code); el != nil {
		header = "[source," + language(el) + "]"
		code = textOf(el)
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return "\n" + header + "\n----\n" + code + "----\n"
}

// language reads the highlight language from a code element's classes:
// either a language-* class or a bare language name.
func language(code *html.Node) string {
	for _, class := range strings.Fields(attr(code, "class")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
		if codeLanguages[class] {
			return class
		}
	}
	return ""
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// find returns the first descendant element with the given tag.
func find(n *html.Node, a atom.Atom) *html.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.DataAtom == a {
			return ch
		}
		if f := find(ch, a); f != nil {
			return f
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b.WriteString(textOf(ch))
	}
	return b.String()
}
