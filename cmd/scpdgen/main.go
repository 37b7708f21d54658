// Command scpdgen generates Go client bindings for the TR-064 and IGD
// services of a device from its device and service descriptions.
//
// Usage:
//
//	scpdgen [-config scpdgen.yaml] [-address http://fritz.box:49000] [-output dir]
//	        [-import-path path] [-parallelism n] [-root desc=prefix ...]
//	        [-from-dir dir] [-keep-broken]
//
// Flags given on the command line override the configuration file.
// Nothing is written unless generation succeeds for every root.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/andaru/scpdgen/config"
	"github.com/andaru/scpdgen/generator"
	"github.com/andaru/scpdgen/render"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// rootsFlag collects repeated -root desc=prefix flags
type rootsFlag []config.Root

func (r *rootsFlag) String() string {
	var s []string
	for _, root := range *r {
		s = append(s, root.String())
	}
	return strings.Join(s, ",")
}

func (r *rootsFlag) Set(v string) error {
	desc, prefix, ok := strings.Cut(v, "=")
	if !ok || desc == "" {
		return errors.Errorf("%q is not desc=prefix", v)
	}
	*r = append(*r, config.Root{Description: desc, Prefix: prefix})
	return nil
}

var (
	configPath  = flag.String("config", "scpdgen.yaml", "YAML configuration file; missing means defaults")
	address     = flag.String("address", "", "base address of the device, e.g. http://fritz.box:49000")
	output      = flag.String("output", "", "output directory")
	importPath  = flag.String("import-path", "", "Go import path of the output directory")
	parallelism = flag.Int("parallelism", 0, "number of services fetched at once")
	fromDir     = flag.String("from-dir", "", "read documents from a directory snapshot instead of the device")
	keepBroken  = flag.Bool("keep-broken", false, "on a formatting failure, write the unformatted source to <path>.broken")
	roots       rootsFlag
)

func init() {
	flag.Var(&roots, "root", "description document and module prefix, desc=prefix (repeatable)")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	c, err := configure()
	if err == nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = generator.Run(ctx, generator.Options{Config: c})
		stop()
		if err != nil && *keepBroken {
			keep(c.Output, err)
		}
	}
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// configure loads the configuration file and applies the flags set on
// the command line
func configure() (*config.Config, error) {
	c, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "address":
			c.Address = *address
		case "output":
			c.Output = *output
		case "import-path":
			c.ImportPath = *importPath
		case "parallelism":
			c.Parallelism = *parallelism
		case "from-dir":
			c.FromDir = *fromDir
		case "root":
			c.Roots = roots
		}
	})
	glog.V(1).Infof("config: address %s, output %s, roots %v", c.Address, c.Output, c.Roots)
	return c, nil
}

// keep writes the unformatted source of a formatting failure next to
// where the file would have been written
func keep(dir string, err error) {
	var se *render.SourceError
	if !errors.As(err, &se) {
		return
	}
	path := filepath.Join(dir, filepath.FromSlash(se.Path)) + ".broken"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		glog.Warningf("keeping broken source: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(se.Source), 0o644); err != nil {
		glog.Warningf("keeping broken source: %v", err)
		return
	}
	glog.Infof("unformatted source written to %s", path)
}
