// SPDX-License-Identifier: MIT

package composition

import "sort"

// Isotope is one entry of the flat list handed to the solver.
// Component is the index, in the owning mixture's list, of the declared
// component the entry came from.
type Isotope struct {
	Label     string
	Density   float64 // number density [atoms/cm3]
	Mixture   string
	Component int
}

// NewIsotope builds an entry owned by mix and its component at index comp.
func NewIsotope(label string, density float64, mix *Mixture, comp int) Isotope {
	iso := Isotope{Label: label, Density: density, Component: comp}
	if mix != nil {
		iso.Mixture = mix.Name
	}
	return iso
}

// IsotopeList is a flat, ordered isotope list.
type IsotopeList []Isotope

// Merge returns l followed by other. No entry is ever dropped or combined:
// labels are made distinct by the naming scheme, not by aggregation here.
// Neither input is modified.
func (l IsotopeList) Merge(other IsotopeList) IsotopeList {
	out := make(IsotopeList, 0, len(l)+len(other))
	out = append(out, l...)
	return append(out, other...)
}

// Len returns the number of entries.
func (l IsotopeList) Len() int { return len(l) }

// Total returns the sum of all number densities.
func (l IsotopeList) Total() float64 {
	var sum float64
	for _, iso := range l {
		sum += iso.Density
	}
	return sum
}

// Labels returns the distinct labels in lexical order.
func (l IsotopeList) Labels() []string {
	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, iso := range l {
		if _, ok := seen[iso.Label]; ok {
			continue
		}
		seen[iso.Label] = struct{}{}
		out = append(out, iso.Label)
	}
	sort.Strings(out)
	return out
}

// ByLabel sums densities per label. Reporting only; the solver consumes
// the unaggregated list.
func (l IsotopeList) ByLabel() map[string]float64 {
	out := make(map[string]float64, len(l))
	for _, iso := range l {
		out[iso.Label] += iso.Density
	}
	return out
}
