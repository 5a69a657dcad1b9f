package extractor

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var hiddenElements = map[string]struct{}{
	"head": {}, "script": {}, "style": {}, "noscript": {}, "template": {},
}

var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "fieldset": {}, "figcaption": {}, "figure": {}, "footer": {},
	"form": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {},
	"hr": {}, "li": {}, "main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {}, "section": {},
	"table": {}, "tr": {}, "ul": {},
}

// renderText approximates the rendered text of a selection: hidden elements are
// skipped, <br> and block boundaries become line breaks, table cells are tab separated.
func renderText(sel *goquery.Selection) string {
	w := &textWriter{}
	for _, n := range sel.Nodes {
		writeNode(w, n, false)
	}
	return w.String()
}

// textWriter only breaks a block boundary when the current line holds text
type textWriter struct {
	strings.Builder
	lineStart int
}

func (w *textWriter) text(s string) {
	w.WriteString(s)
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		w.lineStart = w.Len() - len(s) + idx + 1
	}
}

func (w *textWriter) lineBreak() {
	if strings.TrimSpace(w.String()[w.lineStart:]) == "" {
		return
	}
	w.text("\n")
}

func writeNode(b *textWriter, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.text(n.Data)
		} else {
			b.text(collapseSpace(n.Data))
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if _, hidden := hiddenElements[n.Data]; hidden {
			return
		}
		if hasHiddenStyle(n) {
			return
		}
		if n.Data == "br" {
			b.text("\n")
			return
		}
	}

	_, block := blockElements[n.Data]
	if block && n.Type == html.ElementNode {
		b.lineBreak()
	}
	pre = pre || (n.Type == html.ElementNode && n.Data == "pre")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c, pre)
	}
	if n.Type == html.ElementNode {
		switch {
		case block:
			b.lineBreak()
		case n.Data == "td" || n.Data == "th":
			b.text("\t")
		}
	}
}

func hasHiddenStyle(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// collapseSpace folds whitespace runs, source newlines included, into single spaces
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}

	collapsed := strings.Join(fields, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		collapsed = " " + collapsed
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		collapsed += " "
	}
	return collapsed
}
