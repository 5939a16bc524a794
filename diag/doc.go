// SPDX-License-Identifier: MIT

// Package diag defines the user-facing error taxonomy shared by every
// preprocessing stage.
//
// Every failure that a user can cause through input (an unopenable library,
// an unknown element, a truncated flux file, ...) is reported as an *Error
// carrying a numeric Code and the offending identifier. Codes are stable and
// grouped by stage:
//
//	1xx – library and input-description errors
//	3xx – composition resolution (element/material/mixture lookups)
//	6xx – flux resolution (text and RTFLUX readers)
//
// Severity:
//
//   - Fatal errors are returned unchanged up the call stack; no stage retries
//     or recovers. The command-line driver is the single place that turns a
//     Fatal error into process termination.
//   - Warning errors describe conditions the caller may tolerate (for example
//     a flux file failing its accessibility check); they are logged and
//     surfaced through sentinel status values instead of aborting.
//
// Use errors.As to recover the *Error, or CodeOf for the numeric category.
package diag
