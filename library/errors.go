// SPDX-License-Identifier: MIT

package library

import "errors"

var (
	// ErrTruncated indicates that a library record ended before all of its
	// declared fields were read.
	ErrTruncated = errors.New("library: truncated record")

	// ErrBadNumber indicates that a numeric field did not parse or was out
	// of range (e.g. a negative count).
	ErrBadNumber = errors.New("library: malformed numeric field")
)
