// Package config loads the bridge declaration file: which packages to load,
// which types are bridge roots, and how generated output is laid out.
package config

import (
	"fmt"
	"strings"

	"bridge-generator/internal/symquery"
)

// Config is the parsed declaration file.
type Config struct {
	// Version of the config schema.
	Version string `yaml:"version"`
	// Packages are Go package patterns to load (e.g. "./..." or explicit paths).
	Packages []string `yaml:"packages"`
	// Roots designate the types to bridge.
	Roots []RootSpec `yaml:"roots"`
	// Output controls generated code placement.
	Output OutputSpec `yaml:"output"`
}

// RootSpec designates one root type and its generation options.
type RootSpec struct {
	// Type is the fully qualified type, "pkg/path.Name".
	Type string `yaml:"type"`
	// ProxyName optionally fixes the bridge identifier for this root.
	// Explicit names are reserved before any automatic assignment and are
	// never altered.
	ProxyName string `yaml:"proxyName"`
	// FactoryMethod optionally names the generated constructor.
	FactoryMethod string `yaml:"factoryMethod"`
	// IncludeNested additionally roots every exported type of the root's
	// package. Defaults to true.
	IncludeNested *bool `yaml:"includeNested"`
}

// OutputSpec controls where and how generated files are written.
type OutputSpec struct {
	// Package is the package name for generated files.
	Package string `yaml:"package"`
	// Dir is the output directory.
	Dir string `yaml:"dir"`
}

// Nested reports the effective includeNested value.
func (r *RootSpec) Nested() bool {
	if r.IncludeNested == nil {
		return true
	}

	return *r.IncludeNested
}

// Identity parses the root's type string into a TypeIdentity.
func (r *RootSpec) Identity() (symquery.TypeIdentity, error) {
	dot := strings.LastIndex(r.Type, ".")
	if dot <= 0 || dot == len(r.Type)-1 {
		return symquery.TypeIdentity{}, fmt.Errorf("root type %q is not of the form pkg/path.Name", r.Type)
	}

	return symquery.TypeIdentity{
		PkgPath: r.Type[:dot],
		Name:    r.Type[dot+1:],
	}, nil
}
