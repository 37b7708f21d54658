package xmlutil

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// XMLName is a shortcut for creating xml.Name, where typically you want at least
// a local name, and perhaps a namespace value as well.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// NodeName returns the namespace qualified name of an element node.
func NodeName(n *xmlquery.Node) xml.Name {
	if n == nil {
		return xml.Name{}
	}
	return XMLName(n.Data, n.NamespaceURI)
}
