// SPDX-License-Identifier: MIT

package composition

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/library"
)

// Avogadro is the default Avogadro constant [1/mol].
const Avogadro = 6.02214076e23

// Library is the lookup surface the resolver needs. *library.Library
// satisfies it.
type Library interface {
	Element(key string) (library.Element, bool)
	Material(name string) (library.Material, bool)
}

// Resolver expands mixtures against a library.
type Resolver struct {
	lib      Library
	avogadro float64
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAvogadro overrides the Avogadro constant, e.g. to reproduce results
// computed with an older CODATA value.
func WithAvogadro(na float64) Option {
	return func(r *Resolver) { r.avogadro = na }
}

// NewResolver returns a resolver reading from lib.
func NewResolver(lib Library, opts ...Option) *Resolver {
	r := &Resolver{lib: lib, avogadro: Avogadro, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Expand walks mix's components in order and returns the merged isotope
// list. Similar references must have been spliced (see ResolveSimilar).
// The first lookup miss aborts the expansion.
func (r *Resolver) Expand(mix *Mixture) (IsotopeList, error) {
	if mix == nil {
		return nil, ErrNilMixture
	}

	var out IsotopeList
	for i, node := range mix.Components().Nodes() {
		var (
			part IsotopeList
			err  error
		)
		switch node.Kind {
		case KindMaterial:
			part, err = r.ExpandMaterial(mix, node, i)
		case KindElement, KindTargetElement:
			part, err = r.ExpandElement(mix, node, i)
		case KindTargetIsotope:
			part = IsotopeList{NewIsotope(node.Name, node.Density.Value(), mix, i)}
		case KindIsotope:
			r.logger.Debug("isotope component not expanded",
				zap.String("mixture", mix.Name), zap.String("isotope", node.Name))
			continue
		case KindSimilar:
			return nil, fmt.Errorf("%w: mixture %s component %d (%s)",
				ErrUnresolvedSimilar, mix.Name, i, node.Name)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownKind, node.Kind)
		}
		if err != nil {
			return nil, err
		}
		out = out.Merge(part)
		r.logger.Debug("merged component",
			zap.String("mixture", mix.Name),
			zap.Stringer("kind", node.Kind),
			zap.String("name", node.Name),
			zap.Int("isotopes", len(part)))
	}

	return out, nil
}

// ExpandMaterial expands one Material node. owner is the node's index in
// the mixture, recorded on every emitted isotope.
//
// The material record is the first one named exactly node.Name. Its
// density scales the node's density; each constituent becomes a transient
// Element node with ScaleReference(wt% × density × volumeFraction / 100)
// and volume fraction 1.
//
// Errors: diag.CodeMaterialNotFound (311), plus any ExpandElement error.
func (r *Resolver) ExpandMaterial(mix *Mixture, node Node, owner int) (IsotopeList, error) {
	if mix == nil {
		return nil, ErrNilMixture
	}
	rec, ok := r.lib.Material(node.Name)
	if !ok {
		return nil, diag.Fatalf(diag.CodeMaterialNotFound, node.Name,
			"could not find material %s in material library", node.Name)
	}
	r.logger.Debug("found material",
		zap.String("material", rec.Name), zap.Int("constituents", len(rec.Constituents)))

	density := node.Density.Value() * rec.Density

	var out IsotopeList
	for _, c := range rec.Constituents {
		ele := Node{
			Kind:           KindElement,
			Name:           c.Element,
			Density:        ScaleReference(c.Density * density * node.VolumeFraction / 100),
			VolumeFraction: 1,
		}
		part, err := r.ExpandElement(mix, ele, owner)
		if err != nil {
			return nil, err
		}
		out = out.Merge(part)
	}

	return out, nil
}

// ExpandElement expands one Element (or TargetElement) node into its
// isotopes. owner is recorded on every emitted isotope; for constituents
// of a material it is the material node's index.
//
// The resolved density is also added, times the volume fraction, to the
// mixture's total density.
//
// Errors: diag.CodeElementNotFound (310); diag.CodeLibraryFormat (112) when
// the library entry has a non-positive mass number.
func (r *Resolver) ExpandElement(mix *Mixture, node Node, owner int) (IsotopeList, error) {
	if mix == nil {
		return nil, ErrNilMixture
	}
	ent, ok := r.lib.Element(node.Name)
	if !ok {
		return nil, diag.Fatalf(diag.CodeElementNotFound, node.Name,
			"could not find element %s in element library", node.Name)
	}
	if ent.A <= 0 {
		return nil, diag.Fatalf(diag.CodeLibraryFormat, node.Name,
			"element %s has non-positive mass number %g", node.Name, ent.A)
	}

	density := node.Density.Resolve(ent.Density)
	numberDensity := node.VolumeFraction * density * r.avogadro / ent.A
	mix.IncrementTotalDensity(density * node.VolumeFraction)

	r.logger.Debug("found element",
		zap.String("element", node.Name),
		zap.Int("isotopes", len(ent.Isotopes)),
		zap.Float64("density", density))

	prefix := node.Qualifier()
	out := make(IsotopeList, 0, len(ent.Isotopes))
	for _, iso := range ent.Isotopes {
		out = append(out, NewIsotope(prefix+"-"+iso.Name, iso.Abundance*numberDensity/100, mix, owner))
	}

	return out, nil
}
