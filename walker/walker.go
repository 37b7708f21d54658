// Package walker visits every service of a device tree and builds its
// service unit into an output set.
package walker

import (
	"context"

	"github.com/andaru/scpdgen/description"
	"github.com/andaru/scpdgen/fetch"
	"github.com/andaru/scpdgen/model"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Visit is a service and the device offering it
type Visit struct {
	Device  *description.Device
	Service description.Service
}

// Services returns the services of the tree rooted at root, depth
// first in preorder: a device's own services, then those of its nested
// devices in document order.
func Services(root *description.Device) []Visit {
	if root == nil {
		return nil
	}
	var visits []Visit
	stack := []*description.Device{root}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, svc := range d.Services {
			visits = append(visits, Visit{Device: d, Service: svc})
		}
		for i := len(d.Devices) - 1; i >= 0; i-- {
			stack = append(stack, &d.Devices[i])
		}
	}
	return visits
}

// Walker builds the service units of device trees. Each service's SCPD
// is fetched from Base followed by the service's SCPD path.
type Walker struct {
	Fetcher fetch.Fetcher
	Builder *model.Builder
	Base    string
	// Parallelism bounds the number of services fetched and built at
	// once. Values below 2 walk strictly sequentially.
	Parallelism int
}

// Walk adds a unit per service of the tree rooted at root to out, and
// every action name to out's envelope names, in traversal order
// regardless of Parallelism. Any failure aborts the walk and leaves out
// unchanged.
func (w *Walker) Walk(ctx context.Context, root *description.Device, out *model.OutputSet) error {
	visits := Services(root)
	units := make([]model.ServiceUnit, len(visits))
	names := make([]model.NameSet, len(visits))

	if w.Parallelism < 2 {
		for i, v := range visits {
			u, err := w.visit(ctx, v, &names[i])
			if err != nil {
				return err
			}
			units[i] = u
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.Parallelism)
		for i, v := range visits {
			i, v := i, v
			g.Go(func() error {
				u, err := w.visit(gctx, v, &names[i])
				if err != nil {
					return err
				}
				units[i] = u
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for i := range units {
		out.EnvelopeNames.Add(names[i].Names()...)
		out.Add(units[i])
	}
	return nil
}

func (w *Walker) visit(ctx context.Context, v Visit, names *model.NameSet) (model.ServiceUnit, error) {
	if err := ctx.Err(); err != nil {
		return model.ServiceUnit{}, errors.WithStack(err)
	}
	url := w.Base + v.Service.SCPDURL
	glog.V(1).Infof("fetching SCPD for %s from %s", v.Service.ServiceType, url)

	text, err := w.Fetcher.Fetch(ctx, url)
	if err != nil {
		return model.ServiceUnit{}, err
	}
	doc, err := description.ParseSCPD(text)
	if err != nil {
		return model.ServiceUnit{}, errors.Wrapf(err, "%s", url)
	}
	b := w.Builder
	if b == nil {
		b = &model.Builder{}
	}
	u, err := b.BuildUnit(doc, v.Service, names)
	if err != nil {
		return model.ServiceUnit{}, err
	}
	u.Device = v.Device.FriendlyName
	glog.V(1).Infof("service unit %s built: %d actions", u.Name, len(u.Actions))
	return u, nil
}
