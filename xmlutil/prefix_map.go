package xmlutil

import (
	"encoding/xml"
	"sort"
	"strings"
)

// PrefixMap is a prefix to namespace URI map
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap, containing the passed XML attributes
func NewPrefixMap(attrs ...xml.Attr) PrefixMap {
	pmap := PrefixMap{}
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" {
			pmap[attr.Name.Local] = attr.Value
		}
	}
	return pmap
}

// Attr returns the prefix map contents as a series of xmlns:<prefix>=<nsuri> attributes,
// sorted lexically by prefix.
func (m PrefixMap) Attr() (a []xml.Attr) {
	for k, v := range m {
		a = append(a, xml.Attr{Name: xml.Name{Space: "xmlns", Local: k}, Value: v})
	}
	sort.Slice(a, func(i int, j int) bool { return a[i].Name.Local < a[j].Name.Local })
	return a
}

// Declarations returns the namespace declarations as they appear in
// an element start tag, e.g. `xmlns:s="..." xmlns:u="..."`, sorted by prefix.
func (m PrefixMap) Declarations() string {
	var b strings.Builder
	for i, attr := range m.Attr() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("xmlns:" + attr.Name.Local + `="`)
		_ = xml.EscapeText(&b, []byte(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Prefix returns any prefixes found for the namespace URI, sorted
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	sort.Strings(pfxes)
	return pfxes
}
