// SPDX-License-Identifier: MIT

package composition_test

import "github.com/katalvlaran/nucprep/library"

// memLibrary is an in-memory composition.Library.
type memLibrary struct {
	elements  map[string]library.Element
	materials map[string]library.Material
	matHits   int
}

func (m *memLibrary) Element(key string) (library.Element, bool) {
	e, ok := m.elements[key]
	return e, ok
}

func (m *memLibrary) Material(name string) (library.Material, bool) {
	m.matHits++
	mat, ok := m.materials[name]
	return mat, ok
}

func testLibrary() *memLibrary {
	return &memLibrary{
		elements: map[string]library.Element{
			"fe": {Key: "fe", A: 55.847, Z: 26, Density: 7.874, Isotopes: []library.Isotope{
				{Name: "54", Abundance: 5.8}, {Name: "56", Abundance: 91.72},
				{Name: "57", Abundance: 2.2}, {Name: "58", Abundance: 0.28},
			}},
			"cr": {Key: "cr", A: 51.996, Z: 24, Density: 7.19, Isotopes: []library.Isotope{
				{Name: "52", Abundance: 100},
			}},
			"x": {Key: "x", A: 10, Z: 5, Density: 5.0, Isotopes: []library.Isotope{
				{Name: "10", Abundance: 25}, {Name: "11", Abundance: 75},
			}},
			"region:x": {Key: "region:x", A: 10, Z: 5, Density: 5.0, Isotopes: []library.Isotope{
				{Name: "10", Abundance: 100},
			}},
			"bad": {Key: "bad", A: 0, Density: 1},
		},
		materials: map[string]library.Material{
			"SS": {Name: "SS", Density: 8.0, Constituents: []library.Constituent{
				{Element: "fe", Density: 70, Z: 26}, {Element: "cr", Density: 30, Z: 24},
			}},
			"Void": {Name: "Void", Density: 1.0},
			"Broken": {Name: "Broken", Density: 1.0, Constituents: []library.Constituent{
				{Element: "unobtainium", Density: 100},
			}},
		},
	}
}
