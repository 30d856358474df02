// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/site-search/pkg/types"
)

const (
	postDir     = "content/post"
	postExt     = ".adoc"
	moreMarker  = "<!--more-->"
	dateLayout  = "2006-01-02T15:04:05-07:00"
	defaultSlug = "untitled"
)

// DefaultBlogName names the source blog in the attribution note.
const DefaultBlogName = "Decodable blog"

// attributes is the AsciiDoc document header of every post.
const attributes = `:source-highlighter: rouge
:rouge-style: base16.dark
:icons: font
:imagesdir: /images
ifdef::env-github[]
:imagesdir: ../../static/images
endif::[]
`

var (
	slugStrip = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugDash  = regexp.MustCompile(`[-\s]+`)
)

// frontMatter is the YAML header Hugo reads.
type frontMatter struct {
	Title        string `yaml:"title"`
	Date         string `yaml:"date"`
	Draft        bool   `yaml:"draft"`
	Markup       string `yaml:"markup"`
	CanonicalURL string `yaml:"canonical_url"`
}

// Slug derives a post filename from a title: lower case, punctuation
// dropped, runs of spaces and dashes collapsed to one dash.
func Slug(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	s = slugDash.ReplaceAllString(s, "-")
	if s == "" || s == "-" {
		return defaultSlug
	}
	return s
}

// HugoPost assembles a draft post: YAML front matter, the AsciiDoc header, a
// note pointing at the original article, and content with a summary break
// after its first paragraph.
func HugoPost(a types.Article, content, blogName string) (string, error) {
	if blogName == "" {
		blogName = DefaultBlogName
	}

	fm, err := yaml.Marshal(frontMatter{
		Title:        a.Title,
		Date:         a.Date.Format(dateLayout),
		Draft:        true,
		Markup:       "adoc",
		CanonicalURL: a.URL,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n")
	b.WriteString(attributes)
	b.WriteString("\n")
	fmt.Fprintf(&b, "_This post originally appeared on the link:%s[%s]._\n\n", a.URL, blogName)
	b.WriteString(insertMore(content))
	return b.String(), nil
}

// insertMore adds the summary marker after the first blank line that
// follows some content.
func insertMore(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+1)
	done := false
	for i, line := range lines {
		out = append(out, line)
		if !done && i > 0 && strings.TrimSpace(line) == "" {
			out = append(out, moreMarker)
			done = true
		}
	}
	return strings.Join(out, "\n")
}

// PostPath returns where the post for a is written under hugoRoot.
func PostPath(hugoRoot string, a types.Article) string {
	return filepath.Join(hugoRoot, filepath.FromSlash(postDir), Slug(a.Title)+postExt)
}

// WritePost writes the post for a to content/post/<slug>.adoc under
// hugoRoot and returns its path.
func WritePost(hugoRoot, blogName string, a types.Article, content string) (string, error) {
	post, err := HugoPost(a, content, blogName)
	if err != nil {
		return "", err
	}

	path := PostPath(hugoRoot, a)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating post directory: %w", err)
	}
	if err := writeFileAtomic(path, []byte(post)); err != nil {
		return "", fmt.Errorf("writing post: %w", err)
	}
	return path, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".post-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmpPath, 0o644)
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
