package generr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind represents the generator error-kind enumerate
type Kind int

const (
	// KindFetch is a schema fetcher (transport) error
	KindFetch Kind = iota
	// KindParse indicates a malformed description or SCPD document
	KindParse
	// KindUnknownStateVariable indicates an argument referencing a
	// state variable absent from its own service state table
	KindUnknownStateVariable
	// KindUnmappedType indicates a state variable data type with no
	// entry in the type resolver table
	KindUnmappedType
	// KindRender is a template expansion or source formatting error
	KindRender
	// KindWrite is an artifact sink error
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	case KindUnknownStateVariable:
		return "unknown-state-variable"
	case KindUnmappedType:
		return "unmapped-type"
	case KindRender:
		return "render"
	case KindWrite:
		return "write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "fetch":
		*k = KindFetch
	case "parse":
		*k = KindParse
	case "unknown-state-variable":
		*k = KindUnknownStateVariable
	case "unmapped-type":
		*k = KindUnmappedType
	case "render":
		*k = KindRender
	case "write":
		*k = KindWrite
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error represents a generator error.
//
// Tag holds the offending raw value: the unmapped data type, the
// unknown state variable name, the document or template name.
// Service, Action and Argument locate the failure within the device
// tree so an operator can extend the resolver tables.
type Error struct {
	Kind     Kind   `json:"kind"`
	Tag      string `json:"tag,omitempty"`
	Service  string `json:"service,omitempty"`
	Action   string `json:"action,omitempty"`
	Argument string `json:"argument,omitempty"`
	URL      string `json:"url,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message,omitempty"`
	Cause    error  `json:"-"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error", e.Kind)
	if e.Tag != "" {
		s += " tag:" + e.Tag
	}
	if e.Service != "" {
		s += " service:" + e.Service
	}
	if e.Action != "" {
		s += " action:" + e.Action
	}
	if e.Argument != "" {
		s += " argument:" + e.Argument
	}
	if e.URL != "" {
		s += " url:" + e.URL
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any
func (e Error) Unwrap() error { return e.Cause }

// Is reports whether any error in err's chain is an *Error of kind k
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func newError(k Kind, tag string, opts []Option) *Error {
	e := &Error{Kind: k, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func FetchFailed(url string, opts ...Option) *Error {
	e := newError(KindFetch, "", opts)
	e.URL = url
	return e
}

func Malformed(document string, opts ...Option) *Error {
	return newError(KindParse, document, opts)
}

func UnknownStateVariable(name string, opts ...Option) *Error {
	return newError(KindUnknownStateVariable, name, opts)
}

func UnmappedType(dataType string, opts ...Option) *Error {
	return newError(KindUnmappedType, dataType, opts)
}

func RenderFailed(template string, opts ...Option) *Error {
	return newError(KindRender, template, opts)
}

func WriteFailed(path string, opts ...Option) *Error {
	e := newError(KindWrite, "", opts)
	e.Path = path
	return e
}
