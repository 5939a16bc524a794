// SPDX-License-Identifier: MIT

// Package library loads the element and material data libraries that the
// composition resolver consults.
//
// Overview:
//
//   - The element library maps an element key to its mass number A, atomic
//     number Z, reference density and isotopic abundances (percent).
//   - The material library lists named materials with a reference density
//     and a sequence of (element, element density, Z) constituents.
//
// Both libraries are plain whitespace-separated text. A '#' starts a
// comment that runs to the end of the line and may appear before any token
// group:
//
//	# element library: key A Z density isotopeCount, then isotope lines
//	fe   55.847 26 7.874 4
//	  54 5.8
//	  56 91.72
//	  57 2.2
//	  58 0.28
//
//	# material library: name density elementCount, then element lines
//	SS316 7.95 2
//	  fe 70.0 26
//	  cr 30.0 24
//
// Lifetime:
//
//   - A *Library is assembled once by Open (or New plus the Load methods)
//     and is read-only afterwards. Every resolution call receives it
//     explicitly; there is no package-level state.
//   - The material library is indexed at load time. A lookup returns the
//     first record whose name matches exactly, which is what a scan from the
//     start of the file would find, so repeated lookups are deterministic.
//   - Duplicate element keys overwrite: the last record wins.
//
// Errors:
//
//   - diag.CodeLibraryOpen (110) when a library file cannot be opened.
//   - diag.CodeLibraryFormat (112) when a record is truncated or a numeric
//     field does not parse.
package library
