package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// blockedElements are stripped, content included, from imported text
// before it is installed as the document tree.
var blockedElements = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// Sanitize removes script-bearing HTML elements from imported markup.
// Everything else passes through byte for byte: the tokenizer's raw
// bytes are re-emitted, so markdown syntax is untouched.
func Sanitize(src string) string {
	tz := html.NewTokenizer(strings.NewReader(src))
	var out strings.Builder
	depth := 0 // nesting depth inside a blocked element

	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			break
		}
		name, _ := tz.TagName()
		tag := string(name)

		switch tt {
		case html.StartTagToken:
			if blockedElements[tag] {
				depth++
				continue
			}
		case html.EndTagToken:
			if blockedElements[tag] && depth > 0 {
				depth--
				continue
			}
		case html.SelfClosingTagToken:
			if blockedElements[tag] {
				continue
			}
		}

		if depth > 0 {
			continue
		}
		out.Write(tz.Raw())
	}
	return out.String()
}
