// SPDX-License-Identifier: MIT

package composition

// Mixture owns one component list and the running totals accumulated while
// it is declared and expanded.
type Mixture struct {
	Name string

	components     List
	volumeFraction float64
	totalDensity   float64
}

// NewMixture returns an empty mixture.
func NewMixture(name string) *Mixture {
	return &Mixture{Name: name}
}

// Components returns the mixture's list. The list is owned by the mixture;
// callers may splice it but must not share it with another mixture.
func (m *Mixture) Components() *List { return &m.components }

// AddComponent appends n and adds its declared fraction to the mixture's
// total volume fraction.
func (m *Mixture) AddComponent(n Node) {
	m.components.Append(n)
	m.IncrementVolumeFraction(n.VolumeFraction)
}

// IncrementVolumeFraction adds f to the declared volume fraction.
func (m *Mixture) IncrementVolumeFraction(f float64) { m.volumeFraction += f }

// IncrementTotalDensity adds d to the running total density.
func (m *Mixture) IncrementTotalDensity(d float64) { m.totalDensity += d }

// VolumeFraction returns the declared volume fraction sum.
func (m *Mixture) VolumeFraction() float64 { return m.volumeFraction }

// TotalDensity returns the density accumulated by expansion.
func (m *Mixture) TotalDensity() float64 { return m.totalDensity }

// ResetTotals clears the accumulated total density so a mixture can be
// expanded again from scratch.
func (m *Mixture) ResetTotals() { m.totalDensity = 0 }
