// Package generator runs a complete generation: it walks every
// configured device tree, finalizes one output set per namespace
// prefix, renders all artifacts and only then writes them out.
package generator

import (
	"context"

	"github.com/andaru/scpdgen/aggregate"
	"github.com/andaru/scpdgen/config"
	"github.com/andaru/scpdgen/description"
	"github.com/andaru/scpdgen/fetch"
	"github.com/andaru/scpdgen/model"
	"github.com/andaru/scpdgen/render"
	"github.com/andaru/scpdgen/sink"
	"github.com/andaru/scpdgen/walker"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Options are the inputs of a run. A nil Fetcher fetches from the
// configured address (or snapshot directory), a nil Sink writes below
// the configured output directory.
type Options struct {
	Config  *config.Config
	Fetcher fetch.Fetcher
	Sink    sink.Sink
}

func (o Options) fetcher() fetch.Fetcher {
	switch {
	case o.Fetcher != nil:
		return o.Fetcher
	case o.Config.FromDir != "":
		return fetch.Dir(o.Config.FromDir)
	default:
		return fetch.NewHTTP(o.Config.Timeout)
	}
}

func (o Options) sink() sink.Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return sink.Dir(o.Config.Output)
}

// Run generates bindings for every configured root and writes them.
// Nothing is written unless every root was walked and every artifact
// rendered.
func Run(ctx context.Context, opts Options) error {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	files, err := Generate(ctx, opts)
	if err != nil {
		return err
	}
	return sink.Flush(opts.sink(), files)
}

// Generate returns the rendered artifacts of every configured root,
// output sets in order of first appearance of their prefix.
func Generate(ctx context.Context, opts Options) ([]sink.File, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	f := opts.fetcher()
	w := &walker.Walker{
		Fetcher:     f,
		Builder:     &model.Builder{Types: cfg.Resolver(), Names: cfg.Normalizer()},
		Base:        cfg.Base(),
		Parallelism: cfg.Parallelism,
	}

	var sets []*model.OutputSet
	byPrefix := map[string]*model.OutputSet{}
	for _, r := range cfg.Roots {
		root, err := Describe(ctx, f, cfg.DescriptionURL(r))
		if err != nil {
			return nil, err
		}
		out, ok := byPrefix[r.Prefix]
		if !ok {
			out = model.NewOutputSet(r.Prefix)
			byPrefix[r.Prefix] = out
			sets = append(sets, out)
		}
		if err := w.Walk(ctx, &root.Device, out); err != nil {
			return nil, errors.Wrapf(err, "walking %s", r.Description)
		}
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	var files []sink.File
	for _, out := range sets {
		aggregate.Finalize(out)
		glog.V(1).Infof("%s: %d service units, %d action names", out.Prefix, len(out.Units), len(out.Aliases))
		rendered, err := renderer.Render(aggregate.Artifacts(out, aggregate.Layout{ImportPath: cfg.ImportPath}))
		if err != nil {
			return nil, err
		}
		files = append(files, rendered...)
	}
	return files, nil
}

// Describe fetches and parses the device description at url
func Describe(ctx context.Context, f fetch.Fetcher, url string) (*description.Root, error) {
	text, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	root, err := description.ParseDevice(text)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", url)
	}
	glog.V(1).Infof("%s: %s (%s), firmware %s", url,
		root.Device.FriendlyName, root.Device.ModelName, root.SystemVersion.Display)
	return root, nil
}
