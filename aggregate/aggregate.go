// Package aggregate finalizes output sets into namespaced, deduplicated
// modules and lists the artifacts to render for them.
package aggregate

import (
	"path"
	"sort"

	"github.com/andaru/scpdgen/model"
	"github.com/golang/glog"
)

// SharedName is the name of the unit shared by every service module of
// an output set: the generic response envelope on the response side,
// the request helper on the request side.
const SharedName = "multi_use"

// Module returns the module name of name in the namespace prefix
func Module(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// Finalize assigns module names to the units of out, collapses units
// whose module names collide (the first in traversal order is kept),
// and builds the alias list and both manifests, sorted and
// deduplicated. It returns out, which must not be modified afterwards.
// Finalizing a finalized set has no effect.
func Finalize(out *model.OutputSet) *model.OutputSet {
	if out.Finalized {
		return out
	}
	out.SharedModule = Module(out.Prefix, SharedName)
	out.Aliases = out.EnvelopeNames.Sorted()

	seen := map[string]bool{out.SharedModule: true}
	manifest := []string{out.SharedModule}
	units := out.Units[:0]
	for _, u := range out.Units {
		module := Module(out.Prefix, u.Name)
		if seen[module] {
			glog.Warningf("%s: module %s already generated, dropping service %s of device %q",
				out.Prefix, module, u.ServiceType, u.Device)
			continue
		}
		seen[module] = true
		u.RequestModule = module
		u.ResponseModule = module
		units = append(units, u)
		manifest = append(manifest, module)
	}
	out.Units = units
	sort.Strings(manifest)
	out.RequestManifest = manifest
	out.ResponseManifest = append([]string(nil), manifest...)
	out.Finalized = true
	return out
}

// Kind is an artifact kind. Its string form names the template the
// artifact is rendered with.
type Kind int

const (
	// ResponseTypes is a service's response package
	ResponseTypes Kind = iota
	// RequestFunctions is a service's request package
	RequestFunctions
	// SharedEnvelope is the generic response envelope package
	SharedEnvelope
	// SharedRequest is the request helper package
	SharedRequest
	// ModuleManifest lists the packages of one side of an output set
	ModuleManifest
)

func (k Kind) String() string {
	switch k {
	case ResponseTypes:
		return "response-types"
	case RequestFunctions:
		return "request-functions"
	case SharedEnvelope:
		return "shared-envelope"
	case SharedRequest:
		return "shared-request"
	case ModuleManifest:
		return "module-manifest"
	default:
		return "unknown"
	}
}

// Layout places artifacts below the output directory
type Layout struct {
	// ImportPath is the Go import path of the output directory
	ImportPath string
}

// Artifact is one file to render: its kind, slash separated path
// relative to the output directory, and template data
type Artifact struct {
	Kind Kind
	Path string
	Data any
}

// Import is an imported package
type Import struct {
	Path string
	Name string
}

// Unit is the template data of a service package
type Unit struct {
	Package string
	Prefix  string
	Unit    model.ServiceUnit
	// Shared is the request helper package request functions use
	Shared Import
}

// Shared is the template data of the shared packages
type Shared struct {
	Package string
	Prefix  string
	Aliases []string
}

// Manifest is the template data of a manifest
type Manifest struct {
	Package string
	Prefix  string
	// Side is "requests" or "responses"
	Side    string
	Modules []Import
}

// Side directory names
const (
	Requests  = "requests"
	Responses = "responses"
)

// Dir returns the directory of one side of the output set for prefix
func Dir(prefix, side string) string { return Module(prefix, side) }

// Artifacts lists the artifacts of the finalized output set out: the
// response and request package of each unit in order, then the shared
// packages, then the response and request manifests.
func Artifacts(out *model.OutputSet, layout Layout) []Artifact {
	out = Finalize(out)
	reqDir, respDir := Dir(out.Prefix, Requests), Dir(out.Prefix, Responses)
	file := func(dir, module string) string { return path.Join(dir, module, module+".go") }
	shared := Import{Path: path.Join(layout.ImportPath, reqDir, out.SharedModule), Name: out.SharedModule}

	var artifacts []Artifact
	for _, u := range out.Units {
		artifacts = append(artifacts,
			Artifact{Kind: ResponseTypes, Path: file(respDir, u.ResponseModule),
				Data: Unit{Package: u.ResponseModule, Prefix: out.Prefix, Unit: u}},
			Artifact{Kind: RequestFunctions, Path: file(reqDir, u.RequestModule),
				Data: Unit{Package: u.RequestModule, Prefix: out.Prefix, Unit: u, Shared: shared}},
		)
	}
	artifacts = append(artifacts,
		Artifact{Kind: SharedEnvelope, Path: file(respDir, out.SharedModule),
			Data: Shared{Package: out.SharedModule, Prefix: out.Prefix, Aliases: out.Aliases}},
		Artifact{Kind: SharedRequest, Path: file(reqDir, out.SharedModule),
			Data: Shared{Package: out.SharedModule, Prefix: out.Prefix}},
		manifest(layout, out.Prefix, Responses, respDir, out.ResponseManifest),
		manifest(layout, out.Prefix, Requests, reqDir, out.RequestManifest),
	)
	return artifacts
}

func manifest(layout Layout, prefix, side, dir string, modules []string) Artifact {
	m := Manifest{Package: dir, Prefix: prefix, Side: side}
	for _, module := range modules {
		m.Modules = append(m.Modules, Import{Path: path.Join(layout.ImportPath, dir, module), Name: module})
	}
	return Artifact{Kind: ModuleManifest, Path: path.Join(dir, "doc.go"), Data: m}
}
