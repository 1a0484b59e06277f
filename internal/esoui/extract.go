// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fields scraped from ESOUI pages. The patterns anchor on element ids and
// labelled text, not on document structure; a site redesign makes them
// absent, never an error. (?s) lets captures span lines and the lazy
// quantifiers stop at the first closing marker.
var (
	FieldGameVersion  = MustField("game version", `(?s)<div id="patch"><abbr title="[^"]*">(.+?)</abbr></div>`)
	FieldAddonVersion = MustField("addon version", `(?s)<div id="version">Version: (.*?)</div>`)
	FieldUpdated      = MustField("updated", `(?s)<div id="safe">Updated: (.*?)</div>`)
	FieldName         = MustField("name", `(?s)<title>(.+?) :.+?</title>`)

	// FieldDownloadLink sits next to the "Problems with the download?" notice
	// on the download page; the link is the direct file URL.
	FieldDownloadLink = MustField("download link", `(?s)Problems with the download\? <a href="([^"]+)">Click here</a>`)
)

// Field is a named pattern with exactly one capture group.
type Field struct {
	Name    string
	pattern *regexp.Regexp
}

// NewField compiles pattern and checks that it has exactly one capture group.
func NewField(name, pattern string) (Field, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	if re.NumSubexp() != 1 {
		return Field{}, fmt.Errorf("field %q: pattern must have exactly one capture group, has %d", name, re.NumSubexp())
	}
	return Field{Name: name, pattern: re}, nil
}

// MustField is NewField for package-level patterns; it panics on a bad pattern.
func MustField(name, pattern string) Field {
	f, err := NewField(name, pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Extract applies f once to body and returns the first capture group of the
// first match with surrounding whitespace trimmed and HTML entities decoded.
// A missing match, or a match whose capture is blank, yields ("", false).
func Extract(body string, f Field) (string, bool) {
	if f.pattern == nil {
		return "", false
	}
	m := f.pattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(html.UnescapeString(m[1]))
	if v == "" {
		return "", false
	}
	return v, true
}

// NormalizeHTML parses body and renders it back so attribute quoting and
// implied elements are canonical before the patterns run. When the body cannot
// be parsed the raw text is returned unchanged.
func NormalizeHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return string(body)
	}
	out, err := doc.Html()
	if err != nil {
		return string(body)
	}
	return out
}
