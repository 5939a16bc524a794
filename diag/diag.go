// SPDX-License-Identifier: MIT

package diag

import (
	"errors"
	"fmt"
)

// Code is the numeric category of a diagnostic.
type Code int

const (
	// CodeLibraryOpen: element or material library cannot be opened.
	CodeLibraryOpen Code = 110
	// CodeLibraryFormat: a library record is truncated or not numeric.
	CodeLibraryFormat Code = 112
	// CodeFluxType: a flux description names an unknown format letter.
	CodeFluxType Code = 140

	// CodeElementNotFound: element key missing from the element library.
	CodeElementNotFound Code = 310
	// CodeMaterialNotFound: material name missing from the material library.
	CodeMaterialNotFound Code = 311
	// CodeMixtureNotFound: a similar component names an undeclared mixture.
	CodeMixtureNotFound Code = 312
	// CodeSimilarCycle: similar components reference each other in a loop.
	CodeSimilarCycle Code = 313
	// CodeFluxFile: flux file failed the accessibility check (warning).
	CodeFluxFile Code = 340

	// CodeFluxOpen: flux file cannot be opened while reading data.
	CodeFluxOpen Code = 620
	// CodeFluxTextData: text flux file does not contain enough data.
	CodeFluxTextData Code = 622
	// CodeRTFluxData: RTFLUX file lacks groups/intervals or is truncated.
	CodeRTFluxData Code = 623
	// CodeRTFluxDimension: RTFLUX file is not one-dimensional.
	CodeRTFluxDimension Code = 624
	// CodeRTFluxFormat: RTFLUX header is internally inconsistent.
	CodeRTFluxFormat Code = 625
)

// Severity separates run-terminating diagnostics from advisory ones.
type Severity uint8

const (
	// Fatal diagnostics end the run.
	Fatal Severity = iota
	// Warning diagnostics are reported and the run continues.
	Warning
)

// String returns a lowercase name for the severity.
func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Error is a categorized diagnostic. Subject names the offending identifier
// (element key, material name, file path, ...).
type Error struct {
	Code     Code
	Severity Severity
	Subject  string
	Msg      string
	Err      error // optional underlying cause
}

// Error renders "error 311: <msg>" optionally followed by the cause.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %d: %s: %v", e.Severity, e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s %d: %s", e.Severity, e.Code, e.Msg)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Fatalf builds a Fatal diagnostic.
func Fatalf(code Code, subject string, format string, args ...any) *Error {
	return &Error{Code: code, Severity: Fatal, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// Warningf builds a Warning diagnostic.
func Warningf(code Code, subject string, format string, args ...any) *Error {
	return &Error{Code: code, Severity: Warning, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause to e and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// CodeOf returns the category of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d.Code, true
	}
	return 0, false
}

// IsFatal reports whether err carries a Fatal diagnostic. Errors that are
// not diagnostics at all are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var d *Error
	if errors.As(err, &d) {
		return d.Severity == Fatal
	}
	return true
}
