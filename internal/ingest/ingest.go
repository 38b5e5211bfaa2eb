// Package ingest normalizes pasted job postings before scoring. Users paste
// straight from job boards, so the text often arrives wrapped in HTML with
// erratic whitespace. The scoring side only ever sees plain text.
package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Normalize strips markup and collapses whitespace in a pasted job posting.
// Plain text passes through with only whitespace cleanup.
func Normalize(input string) string {
	text := input
	if looksLikeHTML(input) {
		if stripped, ok := stripHTML(input); ok {
			text = stripped
		}
	}
	return collapseWhitespace(text)
}

// looksLikeHTML is a cheap check so plain-text postings never pass through
// the HTML parser, where a stray "<" could swallow text as a bogus tag.
func looksLikeHTML(input string) bool {
	open := strings.IndexByte(input, '<')
	if open < 0 {
		return false
	}
	return strings.IndexByte(input[open:], '>') > 0
}

func stripHTML(input string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", false
	}

	// Script and style bodies are noise, not posting text
	doc.Find("script, style, noscript").Remove()

	// Insert breaks at block boundaries so adjacent blocks don't fuse into
	// one word when the tags are removed
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return doc.Text(), true
}

func collapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
