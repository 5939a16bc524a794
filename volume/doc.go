// SPDX-License-Identifier: MIT

// Package volume provides a reference interval container and group
// structure for the flux resolver.
//
// An Intervals value stands in for the spatial mesh: it knows how many
// intervals exist and, for each interval, keeps every flux spectrum stored
// into it as a gonum vector, already multiplied by the descriptor's scale.
// Groups carries the energy-group count and records how many flux
// descriptions the problem declares.
package volume
