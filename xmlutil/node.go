package xmlutil

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// ChildText returns the trimmed text of the first child element of n
// named local, or the empty string if there is no such element.
//
// Device and service descriptions found in the wild commonly carry
// stray whitespace around values, so every value is trimmed.
func ChildText(n *xmlquery.Node, local string) string {
	if n == nil {
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return strings.TrimSpace(c.InnerText())
		}
	}
	return ""
}

// Children returns the child elements of n named local, in document order.
func Children(n *xmlquery.Node, local string) (nodes []*xmlquery.Node) {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Child returns the first child element of n named local, or nil.
func Child(n *xmlquery.Node, local string) *xmlquery.Node {
	if nodes := Children(n, local); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
