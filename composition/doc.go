// SPDX-License-Identifier: MIT

// Package composition turns a mixture's declared components into a flat list
// of isotope number densities.
//
// Overview:
//
//   - A Mixture owns an ordered List of Nodes. Each Node is one declared
//     component: a Material, an Element, an Isotope, a Similar reference to
//     another mixture, or a TargetElement/TargetIsotope.
//   - ResolveSimilar splices scaled copies of referenced mixtures in place
//     of every Similar node. It must run before expansion.
//   - Resolver.Expand walks the list and, using the element and material
//     libraries, produces an IsotopeList.
//
// Density semantics:
//
// Every Node carries a Density, which is one of two explicit cases:
//
//	Absolute(v)        v is final (g/cm3) and is used as-is.
//	ScaleReference(f)  the final density is f × the library reference density.
//
// Input formats that encode the choice in the sign of a single number map
// onto these cases with DensityFromSigned: a negative value means
// ScaleReference(|v|), anything else means Absolute(v).
//
// Expansion rules:
//
//	Material        → look up the material record (first exact name match),
//	                  resolve density = |density| × record density, then
//	                  expand each constituent as a transient Element with
//	                  ScaleReference(wt% × density × volumeFraction / 100)
//	                  and volume fraction 1.
//	Element,
//	TargetElement   → look up the element, resolve density, compute
//	                  N = vf × ρ × N_A / A, add ρ × vf to the mixture's total
//	                  density, emit one Isotope per abundance entry with
//	                  density pct × N / 100 and label "<qualifier>-<isotope>".
//	TargetIsotope   → one Isotope with the node density, fraction ignored.
//	Isotope         → not expanded; isotopes reach the solver as targets or
//	                  through element expansion.
//	Similar         → an error: splicing must already have happened.
//
// Errors:
//
//   - diag 310 / 311 for element / material lookup misses.
//   - diag 312 / 313 for unknown or cyclic Similar references.
//   - ErrNotSimilar, ErrIndexOutOfRange, ErrUnresolvedSimilar for API misuse.
//
// Concurrency:
//
// Expansion mutates the Mixture's running totals; a Mixture must not be
// expanded from more than one goroutine at a time. A Resolver only reads
// its library and may be shared.
package composition
