// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major storage used for flux data.
//
// A flux matrix has one row per spatial interval and one column per energy
// group. Readers fill it in interval-major order, and the interval container
// consumes it row by row:
//
//	        g0     g1    ...   gG-1
//	i0   [ φ00    φ01   ...   φ0G-1 ]
//	i1   [ φ10    φ11   ...   φ1G-1 ]
//	...
//
// Guarantees:
//
//   - Public accessors (At, Set, Row, SetRow) return sentinel errors instead
//     of panicking on bad indices or shapes.
//   - Under the default numeric policy Set/SetRow reject NaN and ±Inf, so a
//     corrupt flux file cannot leak non-finite values into the solver.
//   - Loop orders are fixed; no map iteration is involved.
//
// Complexity quicksheet:
//
//	NewDense O(r*c); At/Set O(1); Row O(1) (no copy); SetRow O(c); Clone O(r*c).
package matrix
