// SPDX-License-Identifier: MIT

// Package rtflux reads and writes RTFLUX scalar-flux files, the FORTRAN
// unformatted sequential files produced by DANTSYS-family transport codes.
//
// File layout (every record is bracketed by a 4-byte length marker):
//
//	[len] HNAME HUSE(2) (24 bytes)  IVERS (int32)                          [len]
//	[len] NDIM NGROUP NINTI NINTJ NINTK ITER (int32) EFFK POWER (float32)
//	      NBLOK (int32)                                                    [len]
//	NBLOK × [len] FLUX(I, G) for G in the block, I = 1..NINTI (float64)   [len]
//
// The groups are split into NBLOK blocks of (NGROUP-1)/NBLOK+1 groups each,
// the last one possibly shorter. Within a block values are group-major,
// interval-minor.
//
// Reading:
//
//   - Only one-dimensional files are supported (NDIM > 1 is rejected).
//   - The destination matrix fixes the request: Rows() intervals and Cols()
//     groups. The file must provide at least that many groups and at least
//     Skip+Rows() intervals.
//   - Values are transposed into interval-major order with the skip offset
//     applied along the interval axis: out[i][g] = flux[g*NINTI + i + skip].
//   - Record markers are consumed but, by default, not cross-checked.
//     WithStrictMarkers enables the check.
//
// Byte order:
//
// Files are read in the host's native order unless WithByteOrder names one
// explicitly. Cross-platform files must be read with the writer's order;
// nothing is detected automatically.
//
// Errors (diag categories):
//
//	623  not enough groups or intervals, or the file ends early
//	624  NDIM > 1
//	625  inconsistent header (non-positive sizes or NBLOK), bad markers,
//	     non-finite flux values
//	620  ReadFile cannot open the file
package rtflux
