// Package dom wraps rendered email HTML in the node model the editor
// selects against. A Document couples the parsed node tree with the
// stylesheets found in it, which the computed-style engine needs for
// class-rule resolution.
package dom

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"mailedit/css"
	"mailedit/jsx"
)

// Document is a parsed render output.
type Document struct {
	Root   *html.Node
	Sheets []*css.Stylesheet
}

// ParseDocument parses rendered HTML and collects its embedded stylesheets.
func ParseDocument(rendered string, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("dom")

	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("dom: failed to parse rendered html: %w", err)
	}

	doc := &Document{Root: root}
	parser := css.NewParser(log)
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "style" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				doc.Sheets = append(doc.Sheets, parser.Parse([]byte(n.FirstChild.Data), "style element"))
			}
		}
		return true
	})
	log.Debug("Parsed rendered document", zap.Int("stylesheets", len(doc.Sheets)))
	return doc, nil
}

// FindByElementID finds the node carrying the given data-element-id value.
func (d *Document) FindByElementID(id string) *html.Node {
	var found *html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, jsx.AttrElementID) == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// SelectableNodes returns every node carrying an element identifier, in
// document order.
func (d *Document) SelectableNodes() []*html.Node {
	var out []*html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, jsx.AttrElementID) != "" {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk visits n and its subtree in document order. Returning false from fn
// stops the walk.
func Walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Classes returns the node's class list.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}
