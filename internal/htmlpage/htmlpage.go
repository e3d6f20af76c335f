// Package htmlpage wraps rendered markup into standalone HTML documents.
//
// The renderer emits span markup only; this package adds the surrounding
// document, a charset declaration and the default stylesheet so the output
// opens directly in a browser.
package htmlpage

import (
	_ "embed"
	"html"
	"strings"
)

//go:embed style.css
var styleCSS string

// CSS returns the default stylesheet for rendered markup.
func CSS() string {
	return styleCSS
}

// Page builds a complete HTML document around already-rendered markup.
// The body is inserted verbatim: it is trusted, pre-escaped span output.
func Page(title, body string) string {
	var b strings.Builder
	b.Grow(len(body) + len(styleCSS) + 256)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset='utf-8'>\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(styleCSS)
	b.WriteString("</style>\n</head>\n<body>\n<pre class='vitrine'>")
	b.WriteString(body)
	b.WriteString("</pre>\n</body>\n</html>\n")
	return b.String()
}
