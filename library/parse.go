// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"io"
)

// maxPresize caps slice capacity taken from record counts, which are
// untrusted until the records themselves have been read.
const maxPresize = 64

// ParseElements reads an element library.
// Grammar per record:
//
//	key A Z density isotopeCount
//	isotopeName abundance      (isotopeCount times)
//
// Duplicate keys overwrite earlier records.
func ParseElements(r io.Reader) (map[string]Element, error) {
	tr := newTokenReader(r)
	out := make(map[string]Element)
	for {
		key, err := tr.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		ele := Element{Key: key}
		if ele.A, err = tr.float("mass number"); err != nil {
			return nil, err
		}
		if ele.Z, err = tr.int("atomic number"); err != nil {
			return nil, err
		}
		if ele.Density, err = tr.float("density"); err != nil {
			return nil, err
		}
		n, err := tr.count("isotope count")
		if err != nil {
			return nil, err
		}
		ele.Isotopes = make([]Isotope, 0, min(n, maxPresize))
		for ; n > 0; n-- {
			var iso Isotope
			if iso.Name, err = tr.field("isotope name"); err != nil {
				return nil, err
			}
			if iso.Abundance, err = tr.float("abundance"); err != nil {
				return nil, err
			}
			ele.Isotopes = append(ele.Isotopes, iso)
		}
		out[key] = ele
	}
}

// ParseMaterials reads a material library in file order.
// Grammar per record:
//
//	name density elementCount
//	elementName elementDensity Z   (elementCount times)
//
// Every record's element lines are consumed, so a record that is never
// looked up still keeps the stream synchronized for the ones after it.
func ParseMaterials(r io.Reader) ([]Material, error) {
	tr := newTokenReader(r)
	var out []Material
	for {
		name, err := tr.next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		mat := Material{Name: name}
		if mat.Density, err = tr.float("material density"); err != nil {
			return nil, err
		}
		n, err := tr.count("element count")
		if err != nil {
			return nil, err
		}
		mat.Constituents = make([]Constituent, 0, min(n, maxPresize))
		for ; n > 0; n-- {
			var c Constituent
			if c.Element, err = tr.field("element name"); err != nil {
				return nil, err
			}
			if c.Density, err = tr.float("element density"); err != nil {
				return nil, err
			}
			if c.Z, err = tr.int("element Z"); err != nil {
				return nil, err
			}
			mat.Constituents = append(mat.Constituents, c)
		}
		out = append(out, mat)
	}
}
