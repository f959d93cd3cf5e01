// ABOUTME: HTML utilities for reducing markup to plain text
// ABOUTME: Used when deriving meta descriptions from stored content bodies

package html

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces an HTML fragment to its text content. Script and
// style bodies are dropped, entities are decoded by the tokenizer, and
// runs of whitespace collapse to single spaces.
func StripTags(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return collapseWhitespace(fragment)
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isInvisible(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isInvisible(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isInvisible(tag string) bool {
	return tag == "script" || tag == "style" || tag == "noscript"
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
