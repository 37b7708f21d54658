// Package config holds the scpdgen run configuration, loaded from a
// YAML file.
//
// Example:
//
//	address: http://192.168.178.1:49000
//	output: internal/fritz
//	import_path: example.com/home/internal/fritz
//	parallelism: 4
//	roots:
//	  - description: tr64desc.xml
//	    prefix: tr064
//	acronyms:
//	  - pattern: LTE
//	    replacement: Lte
//	data_types:
//	  ui8: unsigned
package config

import (
	"fmt"
	"go/token"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/andaru/scpdgen/naming"
	"github.com/andaru/scpdgen/typemap"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Root is a device description to generate bindings for, and the
// namespace prefix of its modules. Roots sharing a prefix share one
// output set.
type Root struct {
	Description string `yaml:"description"`
	Prefix      string `yaml:"prefix"`
}

// Config is the run configuration
type Config struct {
	// Address is the base address of the device, e.g.
	// http://fritz.box:49000
	Address string `yaml:"address"`
	// Output is the directory bindings are written to
	Output string `yaml:"output"`
	// ImportPath is the Go import path of Output
	ImportPath string `yaml:"import_path"`
	// FromDir, when set, reads documents from a directory snapshot
	// of the device instead of Address
	FromDir     string        `yaml:"from_dir"`
	Parallelism int           `yaml:"parallelism"`
	Timeout     time.Duration `yaml:"timeout"`
	Roots       []Root        `yaml:"roots"`
	// Acronyms are applied ahead of the default acronym table
	Acronyms []naming.Rule `yaml:"acronyms"`
	// DataTypes extend the default data type table
	DataTypes map[string]typemap.Type `yaml:"data_types"`
}

// Default returns the default configuration: both description
// documents of an AVM FRITZ!Box, fetched sequentially.
func Default() *Config {
	return &Config{
		Address:     "http://fritz.box:49000",
		Output:      "output",
		ImportPath:  "output",
		Parallelism: 1,
		Timeout:     30 * time.Second,
		Roots: []Root{
			{Description: "tr64desc.xml", Prefix: "tr064"},
			{Description: "igddesc.xml", Prefix: "igd"},
		},
	}
}

// Parse returns the configuration in data, over the defaults
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return c, nil
}

// Load returns the configuration in the file at path. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.Address)
	switch {
	case c.FromDir != "":
	case err != nil:
		return errors.Wrap(err, "address")
	case u.Scheme != "http" && u.Scheme != "https" || u.Host == "":
		return errors.Errorf("address %q is not an absolute http(s) URL", c.Address)
	}
	if c.Output == "" {
		return errors.New("output directory not set")
	}
	if c.Parallelism < 1 {
		return errors.Errorf("parallelism %d below 1", c.Parallelism)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout %v not positive", c.Timeout)
	}
	if len(c.Roots) == 0 {
		return errors.New("no roots")
	}
	for i, r := range c.Roots {
		if strings.TrimSpace(r.Description) == "" {
			return errors.Errorf("root %d: no description", i)
		}
		if r.Prefix != "" && !token.IsIdentifier(r.Prefix) {
			return errors.Errorf("root %d: prefix %q is not an identifier", i, r.Prefix)
		}
	}
	if err := c.Normalizer().Validate(); err != nil {
		return errors.Wrap(err, "acronyms")
	}
	return nil
}

// Normalizer returns the identifier normalizer for the configured
// acronyms
func (c *Config) Normalizer() *naming.Normalizer {
	return naming.Default().WithAcronyms(c.Acronyms...)
}

// Resolver returns the type resolver for the configured data types
func (c *Config) Resolver() *typemap.Resolver {
	table := typemap.DefaultTable()
	for tag, t := range c.DataTypes {
		table[tag] = t
	}
	return typemap.New(table)
}

// Base returns Address without trailing slashes
func (c *Config) Base() string { return strings.TrimRight(c.Address, "/") }

// DescriptionURL returns the URL of the description document of r
func (c *Config) DescriptionURL(r Root) string {
	return c.Base() + "/" + strings.TrimLeft(r.Description, "/")
}

func (r Root) String() string { return fmt.Sprintf("%s=%s", r.Description, r.Prefix) }
