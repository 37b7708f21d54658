// Package description parses the two XML document shapes a TR-064 or
// UPnP device publishes about itself.
//
// The device description (tr64desc.xml, igddesc.xml) is a tree: a
// root device holding a list of services and a list of nested
// devices, each of which may again hold services and devices.  Every
// service names its service type, control URL and the path of its
// service control protocol description (SCPD).
//
// The SCPD is a flat document: an ordered list of actions, each with
// ordered in and out arguments, and a service state table declaring
// the data type of every state variable the arguments refer to.
//
// The two shapes share no structure.  Both are parsed with xmlquery
// and selected with precompiled XPath expressions; element values are
// whitespace trimmed.  A document that is not well formed, or that
// lacks its root element, fails with a generr parse error.
package description
