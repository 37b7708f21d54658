/*
Package scpdgen is a set of libraries generating Go client bindings for
TR-064 and UPnP IGD devices.

Starting from a device description (tr64desc.xml, igddesc.xml), every
service of the device tree is visited, its service control protocol
description (SCPD) fetched and modelled: one response type and one
request constructor per action, with argument types resolved through the
service state table and vendor identifiers normalized into Go-friendly
names.

Service units are aggregated per namespace prefix into request and
response packages, a shared envelope able to decode the response of any
known action, a shared request helper and a manifest per side. Nothing
is written until the whole device tree has been modelled and rendered.

See the generator sub-directory for a complete run, and cmd/scpdgen for
the command line tool.
*/
package scpdgen
