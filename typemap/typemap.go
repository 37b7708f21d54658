// Package typemap resolves SCPD state variable data types to the small
// set of semantic types generated bindings are written in terms of.
//
// The mapping is intentionally lossy: integer widths collapse into one
// unsigned and one signed bucket. A data type outside the table is an
// error, never a guess, since a guessed type may produce a binding
// that cannot decode the device's real response.
package typemap

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andaru/scpdgen/generr"
)

// Type is a resolved semantic type
type Type int

const (
	// Boolean is a truth value ("0"/"1" on the wire)
	Boolean Type = iota
	// UnsignedInteger covers the unsigned integer data types
	UnsignedInteger
	// SignedInteger covers the signed integer data types
	SignedInteger
	// Text covers string, identifier and timestamp data types
	Text
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case UnsignedInteger:
		return "unsigned"
	case SignedInteger:
		return "signed"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func (t *Type) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "boolean":
		*t = Boolean
	case "unsigned":
		*t = UnsignedInteger
	case "signed":
		*t = SignedInteger
	case "text":
		*t = Text
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// GoType returns the Go type generated bindings use for t
func (t Type) GoType() string {
	switch t {
	case Boolean:
		return "bool"
	case UnsignedInteger:
		return "uint32"
	case SignedInteger:
		return "int32"
	default:
		return "string"
	}
}

// Resolver maps raw SCPD data type tags to Types
type Resolver struct {
	table map[string]Type
}

// DefaultTable returns the data type tags known to appear in TR-064 and
// IGD service descriptions
func DefaultTable() map[string]Type {
	return map[string]Type{
		"boolean":  Boolean,
		"ui1":      UnsignedInteger,
		"ui2":      UnsignedInteger,
		"ui4":      UnsignedInteger,
		"i1":       SignedInteger,
		"i2":       SignedInteger,
		"i4":       SignedInteger,
		"string":   Text,
		"uuid":     Text,
		"dateTime": Text,
	}
}

// New returns a Resolver for table. A nil table means DefaultTable.
func New(table map[string]Type) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	r := &Resolver{table: make(map[string]Type, len(table))}
	for k, v := range table {
		r.table[k] = v
	}
	return r
}

// Default returns a Resolver for DefaultTable
func Default() *Resolver { return New(nil) }

// Resolve returns the Type for the raw data type tag
func (r *Resolver) Resolve(tag string) (Type, error) {
	if t, ok := r.table[strings.TrimSpace(tag)]; ok {
		return t, nil
	}
	return 0, generr.UnmappedType(tag)
}

// Tags returns the recognized data type tags, sorted
func (r *Resolver) Tags() []string {
	tags := make([]string, 0, len(r.table))
	for k := range r.table {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
