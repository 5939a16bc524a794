// SPDX-License-Identifier: MIT

// Package config loads nucprep problem files.
//
// A problem file is YAML:
//
//	element_library: elelib.std
//	material_library: matlib.sample
//	search_paths: [/usr/share/nucprep/data]
//	groups: 2
//	intervals: [core, blanket]
//	mixtures:
//	  - name: shield
//	    components:
//	      - {type: material, name: SS316, density: 1.0, volume_fraction: 0.8}
//	      - {type: element, name: fe, density: -1, volume_fraction: 0.2}
//	  - name: liner
//	    components:
//	      - {type: similar, name: shield, volume_fraction: 1}
//	fluxes:
//	  - {name: fw, file: fluxin, scale: 1e10, skip: 0, format: default}
//	output: nucprep.db
//	logging: {level: info}
//
// A negative density asks for that multiple of the library's own reference
// density. Relative file names resolve against the problem file's directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nucprep/composition"
	"github.com/katalvlaran/nucprep/flux"
	"github.com/katalvlaran/nucprep/library"
	"github.com/katalvlaran/nucprep/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid problem")

// DefaultOutput is the database written when the problem names none.
const DefaultOutput = "nucprep.db"

// Component declares one mixture component.
type Component struct {
	Type           string   `yaml:"type"`
	Name           string   `yaml:"name"`
	Density        *float64 `yaml:"density,omitempty"`
	VolumeFraction *float64 `yaml:"volume_fraction,omitempty"`
}

// Mixture declares one named mixture.
type Mixture struct {
	Name       string      `yaml:"name"`
	Components []Component `yaml:"components"`
}

// Flux declares one flux spectrum.
type Flux struct {
	Name   string   `yaml:"name"`
	File   string   `yaml:"file"`
	Scale  *float64 `yaml:"scale,omitempty"` // nil means 1
	Skip   int      `yaml:"skip"`
	Format string   `yaml:"format"`
}

// Problem models one problem file.
type Problem struct {
	ElementLibrary  string         `yaml:"element_library"`
	MaterialLibrary string         `yaml:"material_library"`
	SearchPaths     []string       `yaml:"search_paths,omitempty"`
	Groups          int            `yaml:"groups"`
	Intervals       []string       `yaml:"intervals"`
	Mixtures        []Mixture      `yaml:"mixtures"`
	Fluxes          []Flux         `yaml:"fluxes,omitempty"`
	Output          string         `yaml:"output,omitempty"`
	Logging         logging.Config `yaml:"logging,omitempty"`

	// Dir is the directory relative paths were resolved against.
	Dir string `yaml:"-"`
}

// Load reads, defaults and validates the problem file at path.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	p.resolvePaths(filepath.Dir(path))
	return p, nil
}

// Parse decodes, defaults and validates a problem without resolving paths.
func Parse(data []byte) (*Problem, error) {
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Problem) applyDefaults() {
	if strings.TrimSpace(p.Output) == "" {
		p.Output = DefaultOutput
	}
	for i := range p.Mixtures {
		for j := range p.Mixtures[i].Components {
			c := &p.Mixtures[i].Components[j]
			if c.Density == nil {
				one := 1.0
				c.Density = &one
			}
			if c.VolumeFraction == nil {
				one := 1.0
				c.VolumeFraction = &one
			}
		}
	}
	for i := range p.Fluxes {
		if p.Fluxes[i].Scale == nil {
			one := 1.0
			p.Fluxes[i].Scale = &one
		}
		if p.Fluxes[i].Format == "" {
			p.Fluxes[i].Format = "default"
		}
	}
}

// Validate checks the problem for structural errors.
func (p *Problem) Validate() error {
	var errs []error
	if p.ElementLibrary == "" {
		errs = append(errs, fmt.Errorf("%w: element_library is required", ErrInvalid))
	}
	if len(p.Fluxes) > 0 {
		if p.Groups <= 0 {
			errs = append(errs, fmt.Errorf("%w: groups must be positive, got %d", ErrInvalid, p.Groups))
		}
		if len(p.Intervals) == 0 {
			errs = append(errs, fmt.Errorf("%w: fluxes need at least one interval", ErrInvalid))
		}
	}

	seen := make(map[string]bool, len(p.Mixtures))
	for _, m := range p.Mixtures {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%w: mixture without a name", ErrInvalid))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate mixture %s", ErrInvalid, m.Name))
		}
		seen[m.Name] = true
		for j, c := range m.Components {
			kind, err := composition.ParseKind(c.Type)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: mixture %s component %d: %v", ErrInvalid, m.Name, j+1, err))
				continue
			}
			if c.Name == "" {
				errs = append(errs, fmt.Errorf("%w: mixture %s component %d has no name", ErrInvalid, m.Name, j+1))
			}
			if kind == composition.KindMaterial && p.MaterialLibrary == "" {
				errs = append(errs, fmt.Errorf("%w: mixture %s uses material %s but material_library is unset",
					ErrInvalid, m.Name, c.Name))
			}
		}
	}

	names := make(map[string]bool, len(p.Fluxes))
	for _, f := range p.Fluxes {
		if f.Name == "" || f.File == "" {
			errs = append(errs, fmt.Errorf("%w: flux needs both name and file", ErrInvalid))
		}
		if names[f.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate flux %s", ErrInvalid, f.Name))
		}
		names[f.Name] = true
		if f.Skip < 0 {
			errs = append(errs, fmt.Errorf("%w: flux %s: negative skip %d", ErrInvalid, f.Name, f.Skip))
		}
		if _, err := flux.ParseFormat(f.Format); err != nil {
			errs = append(errs, fmt.Errorf("%w: flux %s: %v", ErrInvalid, f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Problem) resolvePaths(dir string) {
	p.Dir = dir
	abs := func(s string) string {
		if s == "" || filepath.IsAbs(s) {
			return s
		}
		return filepath.Join(dir, s)
	}
	p.Output = abs(p.Output)
	for i := range p.Fluxes {
		p.Fluxes[i].File = abs(p.Fluxes[i].File)
	}
	for i := range p.SearchPaths {
		p.SearchPaths[i] = abs(p.SearchPaths[i])
	}
	// Library names may also be found on the search path, so only names
	// present next to the problem file are rewritten.
	for _, s := range []*string{&p.ElementLibrary, &p.MaterialLibrary} {
		if *s == "" || filepath.IsAbs(*s) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, *s)); err == nil {
			*s = filepath.Join(dir, *s)
		}
	}
}

// LibraryOptions returns the options that open this problem's libraries.
func (p *Problem) LibraryOptions() []library.Option {
	opts := []library.Option{
		library.WithElementLibrary(p.ElementLibrary),
		library.WithSearchPaths(p.SearchPaths...),
	}
	if p.MaterialLibrary != "" {
		opts = append(opts, library.WithMaterialLibrary(p.MaterialLibrary))
	}
	return opts
}

// BuildMixtures converts the declared mixtures in file order.
func (p *Problem) BuildMixtures() ([]*composition.Mixture, error) {
	out := make([]*composition.Mixture, 0, len(p.Mixtures))
	for _, m := range p.Mixtures {
		mix := composition.NewMixture(m.Name)
		for _, c := range m.Components {
			kind, err := composition.ParseKind(c.Type)
			if err != nil {
				return nil, fmt.Errorf("config: mixture %s: %w", m.Name, err)
			}
			mix.AddComponent(composition.Node{
				Kind:           kind,
				Name:           c.Name,
				Density:        composition.DensityFromSigned(deref(c.Density)),
				VolumeFraction: deref(c.VolumeFraction),
			})
		}
		out = append(out, mix)
	}
	return out, nil
}

// Descriptors converts the declared fluxes in file order.
func (p *Problem) Descriptors() ([]flux.Descriptor, error) {
	out := make([]flux.Descriptor, 0, len(p.Fluxes))
	for _, f := range p.Fluxes {
		format, err := flux.ParseFormat(f.Format)
		if err != nil {
			return nil, err
		}
		out = append(out, flux.Descriptor{Format: format, Skip: f.Skip, Scale: deref(f.Scale), Name: f.Name, File: f.File})
	}
	return out, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}
