// SPDX-License-Identifier: MIT

package composition

import (
	"fmt"
	"math"
)

// DensityMode selects how a Density value is interpreted.
type DensityMode uint8

const (
	// DensityAbsolute: the value is the final density.
	DensityAbsolute DensityMode = iota
	// DensityScaleReference: the value multiplies a library reference density.
	DensityScaleReference
)

// Density is a component density with an explicit interpretation.
// The zero value is Absolute(0).
type Density struct {
	mode  DensityMode
	value float64
}

// Absolute returns a density used as-is.
func Absolute(v float64) Density { return Density{mode: DensityAbsolute, value: v} }

// ScaleReference returns a density resolved as f × reference.
func ScaleReference(f float64) Density { return Density{mode: DensityScaleReference, value: f} }

// DensityFromSigned decodes the sign convention of legacy input: a negative
// value means "scale the library reference by |v|".
func DensityFromSigned(v float64) Density {
	if v < 0 {
		return ScaleReference(-v)
	}
	return Absolute(v)
}

// Mode reports the interpretation.
func (d Density) Mode() DensityMode { return d.mode }

// Value returns the stored magnitude (final density or scale factor).
func (d Density) Value() float64 { return d.value }

// Signed encodes d back into the legacy sign convention.
func (d Density) Signed() float64 {
	if d.mode == DensityScaleReference {
		return -math.Abs(d.value)
	}
	return d.value
}

// Resolve returns the final density given the library reference density.
func (d Density) Resolve(reference float64) float64 {
	if d.mode == DensityScaleReference {
		return d.value * reference
	}
	return d.value
}

// String renders "abs(v)" or "ref×f".
func (d Density) String() string {
	if d.mode == DensityScaleReference {
		return fmt.Sprintf("ref×%g", d.value)
	}
	return fmt.Sprintf("abs(%g)", d.value)
}
