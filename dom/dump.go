package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"mailedit/utils/debug"
)

// Dump renders the element tree as an indented text outline for debug
// reports. Text nodes are quoted, attributes sorted for stable output.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	dumpNode(tw, d.Root, 0)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, n *html.Node, depth int) {
	switch n.Type {
	case html.ElementNode:
		tw.Line(depth, "<%s>%s", n.Data, attrSummary(n))
		depth++
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			tw.TextBlock(depth, "text", s)
		}
		return
	case html.DocumentNode:
		// children only
	default:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dumpNode(tw, c, depth)
	}
}

func attrSummary(n *html.Node) string {
	if len(n.Attr) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		parts = append(parts, a.Key+"="+a.Val)
	}
	sort.Strings(parts)
	return " " + strings.Join(parts, " ")
}
