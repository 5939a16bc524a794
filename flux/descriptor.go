// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
)

// Format selects how a flux file is decoded.
type Format uint8

const (
	// FormatHeader marks a list-head placeholder; it carries no data.
	FormatHeader Format = iota
	// FormatDefault is a whitespace-separated text file.
	FormatDefault
	// FormatRTFLUX is a FORTRAN-unformatted RTFLUX binary file.
	FormatRTFLUX
)

// String returns the format's input letter name.
func (f Format) String() string {
	switch f {
	case FormatDefault:
		return "default"
	case FormatRTFLUX:
		return "rtflux"
	default:
		return "header"
	}
}

// ParseFormat maps a type word to a Format by its first letter,
// case-insensitively: 'd' is FormatDefault, 'r' is FormatRTFLUX.
func ParseFormat(word string) (Format, error) {
	if word != "" {
		switch unicode.ToLower(rune(word[0])) {
		case 'd':
			return FormatDefault, nil
		case 'r':
			return FormatRTFLUX, nil
		}
	}
	return FormatHeader, diag.Fatalf(diag.CodeFluxType, word, "Invalid flux type: %s", word)
}

// Find results below zero.
const (
	NotFound    = -1
	BadFileName = -2
)

// Descriptor names one flux spectrum and where to read it from.
type Descriptor struct {
	Format Format
	Skip   int
	Scale  float64
	Name   string
	File   string
}

// Header returns the placeholder descriptor.
func Header() Descriptor { return Descriptor{Format: FormatHeader} }

// ParseDescriptor reads "name file scale skip type" from one input line.
func ParseDescriptor(line string) (Descriptor, error) {
	f := strings.Fields(line)
	if len(f) < 5 {
		return Descriptor{}, fmt.Errorf("flux: descriptor %q: want 5 fields, got %d", line, len(f))
	}
	scale, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return Descriptor{}, fmt.Errorf("flux: descriptor %s: scale: %w", f[0], err)
	}
	skip, err := strconv.Atoi(f[3])
	if err != nil {
		return Descriptor{}, fmt.Errorf("flux: descriptor %s: skip: %w", f[0], err)
	}
	if skip < 0 {
		return Descriptor{}, fmt.Errorf("flux: descriptor %s: negative skip %d", f[0], skip)
	}
	format, err := ParseFormat(f[4])
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Format: format, Skip: skip, Scale: scale, Name: f[0], File: f[1]}, nil
}

// CheckFile reports whether the descriptor's file can be opened for reading.
// A failure is logged as warning 340 and is not otherwise an error.
func (d Descriptor) CheckFile(logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.Open(d.File)
	if err != nil {
		w := diag.Warningf(diag.CodeFluxFile, d.File,
			"Unable to open flux file %s for flux %s.", d.File, d.Name).Wrap(err)
		logger.Warn(w.Error(), zap.Int("code", int(w.Code)))
		return false
	}
	_ = f.Close()
	logger.Debug("opened flux file", zap.String("file", d.File))
	return true
}

// Find returns the position of the descriptor named name, BadFileName when
// that descriptor's file cannot be opened, or NotFound.
func Find(descs []Descriptor, name string, logger *zap.Logger) int {
	for i, d := range descs {
		if d.Name != name {
			continue
		}
		if d.CheckFile(logger) {
			return i
		}
		return BadFileName
	}
	return NotFound
}
