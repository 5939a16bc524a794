// SPDX-License-Identifier: MIT

package library

// Isotope is one (isotope name, abundance percent) pair of an element.
type Isotope struct {
	Name      string
	Abundance float64 // atom percent
}

// Element is one element library record.
type Element struct {
	Key      string
	A        float64 // mass number used for number-density conversion
	Z        int
	Density  float64 // reference density [g/cm3]
	Isotopes []Isotope
}

// Constituent is one element line of a material record.
type Constituent struct {
	Element string
	Density float64 // weight percent of the material density
	Z       int
}

// Material is one material library record.
type Material struct {
	Name         string
	Density      float64 // reference density [g/cm3]
	Constituents []Constituent
}
