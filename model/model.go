// Package model holds the semantic model bindings are generated from
// and the builder that derives it from service descriptions.
//
// Field names of the types in this package are part of the template
// contract of the render package; templates bind to them by name.
package model

import (
	"sort"

	"github.com/andaru/scpdgen/typemap"
)

// Field is a request parameter or response field of an action
type Field struct {
	// RawName is the argument name as it appears on the wire
	RawName string
	// Name is the normalized argument name
	Name string
	Type typemap.Type
	// Default and AllowedValues are carried over from the related
	// state variable for documentation
	Default       string
	AllowedValues []string
}

// ActionModel is the model of one action of a service
type ActionModel struct {
	// Name is the raw action name
	Name                string
	ResponseTypeName    string
	RequestFunctionName string
	// Parameters are the in arguments, ResponseFields the out
	// arguments, both in source order
	Parameters     []Field
	ResponseFields []Field
}

// ServiceUnit is the model of one service of a device tree
type ServiceUnit struct {
	ServiceType string
	ServiceID   string
	ControlURL  string
	SCPDURL     string
	// Name is the normalized service type token
	Name string
	// RequestModule and ResponseModule are the namespaced module
	// names, set by the aggregator
	RequestModule  string
	ResponseModule string
	// Device is the friendly name of the device offering the service
	Device  string
	Actions []ActionModel
}

// NameSet is an insertion ordered set of names
type NameSet struct {
	names []string
	seen  map[string]bool
}

// Add adds names not already in the set
func (s *NameSet) Add(names ...string) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	for _, name := range names {
		if !s.seen[name] {
			s.seen[name] = true
			s.names = append(s.names, name)
		}
	}
}

// Has reports whether name is in the set
func (s *NameSet) Has(name string) bool { return s.seen[name] }

// Len returns the number of names in the set
func (s *NameSet) Len() int { return len(s.names) }

// Names returns the names in insertion order
func (s *NameSet) Names() []string { return append([]string(nil), s.names...) }

// Sorted returns the names sorted lexically
func (s *NameSet) Sorted() []string {
	names := s.Names()
	sort.Strings(names)
	return names
}

// OutputSet is the aggregate of one or more device trees generated
// into a common namespace prefix.
//
// It is populated by the walker and finalized by the aggregator, after
// which it is read-only.
type OutputSet struct {
	Prefix string
	// EnvelopeNames holds every raw action name of every service
	EnvelopeNames NameSet
	Units         []ServiceUnit

	// The following are set by the aggregator
	Aliases          []string
	SharedModule     string
	RequestManifest  []string
	ResponseManifest []string
	Finalized        bool
}

// NewOutputSet returns an empty OutputSet for prefix
func NewOutputSet(prefix string) *OutputSet { return &OutputSet{Prefix: prefix} }

// Add appends units in order
func (o *OutputSet) Add(units ...ServiceUnit) { o.Units = append(o.Units, units...) }
