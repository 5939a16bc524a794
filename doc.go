// SPDX-License-Identifier: MIT

// Package nucprep is the preprocessing front end of an activation
// calculation: it turns declared mixtures into isotope number densities and
// attaches energy-group flux spectra to spatial intervals.
//
// Everything lives in subpackages:
//
//	diag/         numbered fatal and warning diagnostics
//	matrix/       dense row-major float64 matrix used as flux storage
//	library/      element and material library parsing and lookup
//	composition/  component lists, Similar splicing and the resolver
//	rtflux/       FORTRAN-unformatted RTFLUX reader and writer
//	flux/         flux descriptors, text reader and interval cross-reference
//	volume/       reference interval container and group structure
//	config/       YAML problem files
//	logging/      zap logger construction
//	store/        SQLite result database
//	cmd/nucprep   command-line driver
//
// Quick start:
//
//	lib, err := library.Open(
//		library.WithElementLibrary("elelib.std"),
//		library.WithMaterialLibrary("matlib.sample"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	mix := composition.NewMixture("shield")
//	mix.AddComponent(composition.Node{
//		Kind:           composition.KindMaterial,
//		Name:           "SS316",
//		Density:        composition.Absolute(1),
//		VolumeFraction: 0.9,
//	})
//	isotopes, err := composition.NewResolver(lib).Expand(mix)
//
// Errors that end a run are *diag.Error values with a numeric Code; use
// diag.CodeOf and diag.IsFatal to classify them.
package nucprep
