// SPDX-License-Identifier: MIT

// Package flux assigns named energy-group flux spectra to spatial intervals.
//
// A problem declares an ordered list of Descriptor values, one per flux
// spectrum. Each descriptor names the spectrum, the file holding it, a
// multiplicative scale, the number of leading intervals to skip and the file
// format:
//
//	FormatDefault: whitespace-separated text, one row of group values per
//	               interval, read by ReadText.
//	FormatRTFLUX:  FORTRAN-unformatted binary, read by package rtflux.
//
// CrossReference walks the descriptors in declaration order. For each one it
// allocates an intervals × groups matrix, fills it from the descriptor's file
// and hands it to the interval container together with the scale factor.
// Every failure is a fatal diag.Error naming the file; files are closed on
// every path.
//
// Find looks a descriptor up by name. A matched descriptor whose file cannot
// be opened yields BadFileName and logs warning 340; an unknown name yields
// NotFound.
package flux
