// Package render expands artifacts into Go source with the templates
// embedded in this package and formats it with goimports.
package render

import (
	"bytes"
	"embed"
	"encoding/xml"
	"strconv"
	"strings"
	"text/template"

	"github.com/andaru/scpdgen/aggregate"
	"github.com/andaru/scpdgen/generr"
	"github.com/andaru/scpdgen/naming"
	"github.com/andaru/scpdgen/sink"
	"github.com/andaru/scpdgen/typemap"
	"github.com/andaru/scpdgen/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// EnvelopeNS is the SOAP 1.1 envelope namespace
const EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// soapNamespaces are declared on generated request envelopes
var soapNamespaces = xmlutil.NewPrefixMap(
	xml.Attr{Name: xmlutil.XMLName("s", "xmlns"), Value: EnvelopeNS},
)

var funcs = template.FuncMap{
	"goName":             naming.GoName,
	"paramName":          naming.GoParamName,
	"goType":             func(t typemap.Type) string { return t.GoType() },
	"quote":              strconv.Quote,
	"join":               strings.Join,
	"envelopeNamespaces": soapNamespaces.Declarations,
}

// SourceError is generated source that goimports rejected. Source holds
// the unformatted text.
type SourceError struct {
	Path   string
	Source string
	Err    error
}

func (e *SourceError) Error() string { return "formatting " + e.Path + ": " + e.Err.Error() }

// Unwrap returns the formatting error
func (e *SourceError) Unwrap() error { return e.Err }

// Renderer renders artifacts
type Renderer struct {
	tmpl *template.Template
}

// New returns a Renderer for the embedded templates
func New() (*Renderer, error) {
	t, err := template.New("scpdgen").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	return &Renderer{tmpl: t}, nil
}

// Artifact renders one artifact with the template named by its kind
func (r *Renderer) Artifact(a aggregate.Artifact) (sink.File, error) {
	name := a.Kind.String()
	var b bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&b, name, a.Data); err != nil {
		return sink.File{}, errors.WithStack(generr.RenderFailed(name, generr.WithPath(a.Path), generr.WithCause(err)))
	}
	src, err := imports.Process(a.Path, b.Bytes(), nil)
	if err != nil {
		return sink.File{}, errors.WithStack(generr.RenderFailed(name, generr.WithPath(a.Path),
			generr.WithCause(&SourceError{Path: a.Path, Source: b.String(), Err: err})))
	}
	return sink.File{Path: a.Path, Text: string(src)}, nil
}

// Render renders every artifact, in order
func (r *Renderer) Render(artifacts []aggregate.Artifact) ([]sink.File, error) {
	files := make([]sink.File, 0, len(artifacts))
	for _, a := range artifacts {
		f, err := r.Artifact(a)
		if err != nil {
			return nil, err
		}
		if glog.V(2) {
			glog.Infof("rendered %s (%s, %d bytes)", f.Path, a.Kind, len(f.Text))
		}
		files = append(files, f)
	}
	return files, nil
}
