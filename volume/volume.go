// SPDX-License-Identifier: MIT

package volume

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/nucprep/matrix"
)

var (
	// ErrShape indicates a stored matrix whose shape disagrees with the container.
	ErrShape = errors.New("volume: flux matrix shape mismatch")

	// ErrNoFlux indicates a flux index with no stored spectrum.
	ErrNoFlux = errors.New("volume: no such flux")
)

// Groups is the energy-group structure shared by all intervals.
type Groups struct {
	groups    int
	numFluxes int
}

// NewGroups returns a structure with n energy groups.
func NewGroups(n int) *Groups { return &Groups{groups: n} }

// NumGroups returns the energy-group count.
func (g *Groups) NumGroups() int { return g.groups }

// SetNumFluxes records how many flux descriptions will be stored.
func (g *Groups) SetNumFluxes(n int) { g.numFluxes = n }

// NumFluxes returns the value recorded by SetNumFluxes.
func (g *Groups) NumFluxes() int { return g.numFluxes }

// Interval is one spatial interval with its stored spectra.
type Interval struct {
	Name   string
	fluxes []*mat.VecDense
}

// Intervals is an ordered interval container.
type Intervals struct {
	items []Interval
}

// NewIntervals returns a container with the given interval names.
func NewIntervals(names ...string) *Intervals {
	items := make([]Interval, len(names))
	for i, n := range names {
		items[i] = Interval{Name: n}
	}
	return &Intervals{items: items}
}

// NewNumbered returns n intervals named "1".."n".
func NewNumbered(n int) *Intervals {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprint(i + 1)
	}
	return NewIntervals(names...)
}

// Count returns the number of intervals.
func (v *Intervals) Count() int { return len(v.items) }

// Name returns the name of interval i.
func (v *Intervals) Name(i int) string { return v.items[i].Name }

// StoreMatrix appends row i of m, multiplied by scale, as the next flux of
// interval i. m must have exactly Count() rows.
func (v *Intervals) StoreMatrix(m *matrix.Dense, scale float64) error {
	if m == nil {
		return matrix.ErrNilMatrix
	}
	if m.Rows() != len(v.items) {
		return fmt.Errorf("%w: %d rows for %d intervals", ErrShape, m.Rows(), len(v.items))
	}
	for i := range v.items {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		vec := mat.NewVecDense(len(row), append([]float64(nil), row...))
		vec.ScaleVec(scale, vec)
		v.items[i].fluxes = append(v.items[i].fluxes, vec)
	}
	return nil
}

// NumFluxes returns how many spectra interval i holds.
func (v *Intervals) NumFluxes(i int) int { return len(v.items[i].fluxes) }

// Flux returns spectrum k of interval i.
func (v *Intervals) Flux(i, k int) (mat.Vector, error) {
	if i < 0 || i >= len(v.items) || k < 0 || k >= len(v.items[i].fluxes) {
		return nil, fmt.Errorf("%w: interval %d flux %d", ErrNoFlux, i, k)
	}
	return v.items[i].fluxes[k], nil
}

// Spectrum returns a copy of spectrum k of interval i.
func (v *Intervals) Spectrum(i, k int) ([]float64, error) {
	f, err := v.Flux(i, k)
	if err != nil {
		return nil, err
	}
	out := make([]float64, f.Len())
	for g := range out {
		out[g] = f.AtVec(g)
	}
	return out, nil
}

// Integral returns the group-summed flux of spectrum k in interval i.
func (v *Intervals) Integral(i, k int) (float64, error) {
	f, err := v.Flux(i, k)
	if err != nil {
		return 0, err
	}
	return mat.Sum(f), nil
}
