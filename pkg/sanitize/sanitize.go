// Package sanitize neutralises markup in user supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "ul", "ol", "li")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}

// RichText keeps a small set of formatting tags and drops everything else.
func RichText(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// maxPlainPasses bounds the strip/unescape loop for entity-encoded markup such as "&lt;b&gt;".
const maxPlainPasses = 3

// PlainText strips all markup and returns unescaped text, so "R&D" is stored as typed.
// Output is not HTML safe; encode it when rendering into HTML.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < maxPlainPasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// PlainTexts applies PlainText to every element, dropping entries that end up empty.
func PlainTexts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = PlainText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
