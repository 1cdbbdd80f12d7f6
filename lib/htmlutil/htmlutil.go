package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node`.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func hasClass(node *html.Node, class string) bool {
	for _, a := range node.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// invisible reports nodes whose text never shows up on the rendered page:
// sort keys, hidden spans, reference markers and styles.
func invisible(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	switch node.Data {
	case "style", "script":
		return true
	case "sup":
		return hasClass(node, "reference")
	}
	if hasClass(node, "sortkey") || hasClass(node, "mw-ref") {
		return true
	}
	style := strings.ReplaceAll(attr(node, "style"), " ", "")
	return strings.Contains(style, "display:none")
}

var blockElements = map[string]bool{
	"p":   true,
	"div": true,
	"li":  true,
	"ul":  true,
	"ol":  true,
	"dl":  true,
	"dd":  true,
	"dt":  true,
}

// CellText renders the visible text of a node, <br> and block elements become
// line breaks so multi-line cells can be split afterwards.
func CellText(node *html.Node) string {
	var buffer bytes.Buffer
	cellTextRecursive(node, &buffer)
	return buffer.String()
}

func cellTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil || invisible(node) {
		return
	}
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(node.Data)
		return
	case html.ElementNode:
		if node.Data == "br" {
			buffer.WriteByte('\n')
			return
		}
	}

	block := node.Type == html.ElementNode && blockElements[node.Data]
	if block {
		buffer.WriteByte('\n')
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		cellTextRecursive(child, buffer)
	}
	if block {
		buffer.WriteByte('\n')
	}
}

// SelectionText is CellText over every node of a selection.
func SelectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		parts = append(parts, CellText(n))
	}
	return strings.Join(parts, "\n")
}
