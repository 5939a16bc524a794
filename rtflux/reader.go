// SPDX-License-Identifier: MIT

package rtflux

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/matrix"
)

// recordReader consumes FORTRAN-bracketed records.
type recordReader struct {
	r    io.Reader
	opts Options
}

// record reads one bracketed record whose body is decoded into data
// (anything binary.Read accepts) of size bytes.
func (rr *recordReader) record(what string, size int, data any) error {
	lead, err := rr.begin(what)
	if err != nil {
		return err
	}
	if err = binary.Read(rr.r, rr.opts.ByteOrder, data); err != nil {
		return rr.short(what, err)
	}
	return rr.end(what, lead, int64(size))
}

// begin reads a record's leading length marker.
func (rr *recordReader) begin(what string) (int32, error) {
	var lead int32
	if err := binary.Read(rr.r, rr.opts.ByteOrder, &lead); err != nil {
		return 0, rr.short(what, err)
	}
	return lead, nil
}

// end reads the trailing marker and, in strict mode, checks both markers
// against the size bytes of body actually consumed.
func (rr *recordReader) end(what string, lead int32, size int64) error {
	var trail int32
	if err := binary.Read(rr.r, rr.opts.ByteOrder, &trail); err != nil {
		return rr.short(what, err)
	}
	if rr.opts.StrictMarkers && (int64(lead) != size || lead != trail) {
		return diag.Fatalf(diag.CodeRTFluxFormat, rr.opts.Name,
			"RTFLUX file %s: %s record markers (%d,%d) do not match length %d",
			rr.opts.Name, what, lead, trail, size).Wrap(ErrMarker)
	}
	rr.opts.Logger.Debug("rtflux record",
		zap.String("record", what), zap.Int32("reclen", lead), zap.Int64("bytes", size))

	return nil
}

// discard skips n body bytes without buffering them.
func (rr *recordReader) discard(what string, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, rr.r, n); err != nil {
		return rr.short(what, err)
	}
	return nil
}

func (rr *recordReader) short(what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return diag.Fatalf(diag.CodeRTFluxData, rr.opts.Name,
		"RTFLUX file %s does not contain enough data - %s record", rr.opts.Name, what).Wrap(err)
}

// ReadHeader decodes the identification and dimension records.
func ReadHeader(r io.Reader, opts ...Option) (Header, error) {
	rr := &recordReader{r: r, opts: buildOptions(opts)}
	return rr.header()
}

func (rr *recordReader) header() (Header, error) {
	var title titleRecord
	if err := rr.record("title", binary.Size(title), &title); err != nil {
		return Header{}, err
	}
	var dim dimRecord
	if err := rr.record("dimension", binary.Size(dim), &dim); err != nil {
		return Header{}, err
	}

	h := title.header()
	h.NDim, h.NGrp, h.NIntI, h.NIntJ, h.NIntK = dim.NDim, dim.NGrp, dim.NIntI, dim.NIntJ, dim.NIntK
	h.Iter, h.EffK, h.Power, h.NBlok = dim.Iter, dim.EffK, dim.Power, dim.NBlok
	rr.opts.Logger.Debug("rtflux header",
		zap.String("file", rr.opts.Name),
		zap.Int32("ndim", h.NDim), zap.Int32("ngrp", h.NGrp),
		zap.Int32("ninti", h.NIntI), zap.Int32("nintj", h.NIntJ),
		zap.Int32("nintk", h.NIntK), zap.Int32("nblok", h.NBlok))

	return h, nil
}

// validate checks h against a request of numIntervals × numGroups.
func validate(h Header, name string, skip, numIntervals, numGroups int) error {
	if h.NDim < 1 || h.NGrp <= 0 || h.NIntI <= 0 || h.NBlok <= 0 {
		return diag.Fatalf(diag.CodeRTFluxFormat, name,
			"RTFLUX file %s has an invalid header (ndim=%d ngrp=%d ninti=%d nblok=%d)",
			name, h.NDim, h.NGrp, h.NIntI, h.NBlok)
	}
	if h.NDim > 1 {
		return diag.Fatalf(diag.CodeRTFluxDimension, name,
			"RTFLUX file %s is %d-dimensional; only 1-D files are supported", name, h.NDim)
	}
	if int(h.NGrp) < numGroups {
		return diag.Fatalf(diag.CodeRTFluxData, name,
			"RTFLUX file %s does not contain enough data - not enough groups (%d < %d)",
			name, h.NGrp, numGroups)
	}
	if int(h.NIntI) < skip+numIntervals {
		return diag.Fatalf(diag.CodeRTFluxData, name,
			"RTFLUX file %s does not contain enough data - not enough intervals (%d < %d+%d)",
			name, h.NIntI, skip, numIntervals)
	}
	return nil
}

// Read decodes an RTFLUX stream into out, which must be sized
// intervals × groups. The header is returned for reporting.
func Read(r io.Reader, out *matrix.Dense, opts ...Option) (Header, error) {
	if out == nil {
		return Header{}, matrix.ErrNilMatrix
	}
	o := buildOptions(opts)
	rr := &recordReader{r: r, opts: o}

	// 1) Header records.
	h, err := rr.header()
	if err != nil {
		return Header{}, err
	}

	// 2) Validate against the request before allocating.
	numIntervals, numGroups := out.Shape()
	if err = validate(h, o.Name, o.Skip, numIntervals, numGroups); err != nil {
		return h, err
	}

	// 3) Group-major blocks. Only the requested window, groups
	// [0, numGroups) × intervals [skip, skip+numIntervals), is kept; the
	// rest of every group row is skipped while streaming, so memory is
	// bounded by out, not by the header.
	ninti := int64(h.NIntI)
	before := int64(o.Skip) * 8
	after := (ninti - int64(o.Skip) - int64(numIntervals)) * 8
	window := make([]float64, numGroups*numIntervals)
	for b := 0; b < int(h.NBlok); b++ {
		lo, hi, ok := h.BlockRange(b)
		if !ok {
			break // blocks past the last group are empty
		}
		what := fmt.Sprintf("block %d", b+1)
		lead, err := rr.begin(what)
		if err != nil {
			return h, err
		}
		for g := lo; g <= hi; g++ {
			if g >= numGroups {
				if err = rr.discard(what, ninti*8); err != nil {
					return h, err
				}
				continue
			}
			if err = rr.discard(what, before); err != nil {
				return h, err
			}
			if err = binary.Read(rr.r, o.ByteOrder, window[g*numIntervals:(g+1)*numIntervals]); err != nil {
				return h, rr.short(what, err)
			}
			if err = rr.discard(what, after); err != nil {
				return h, err
			}
		}
		if err = rr.end(what, lead, blockBytes(hi-lo+1, ninti)); err != nil {
			return h, err
		}
	}

	// 4) Transpose into interval-major order.
	o.Logger.Debug("rtflux transpose",
		zap.Int("groups", numGroups), zap.Int("intervals", numIntervals), zap.Int("skip", o.Skip))
	row := make([]float64, numGroups)
	for i := 0; i < numIntervals; i++ {
		for g := 0; g < numGroups; g++ {
			row[g] = window[g*numIntervals+i]
		}
		if err = out.SetRow(i, row); err != nil {
			return h, diag.Fatalf(diag.CodeRTFluxFormat, o.Name,
				"RTFLUX file %s: bad flux value in interval %d", o.Name, i+o.Skip).Wrap(err)
		}
	}

	return h, nil
}

// blockBytes is the body length of a block of groups × ninti doubles, or -1
// when that cannot be represented (no int32 marker can match it then).
func blockBytes(groups int, ninti int64) int64 {
	if ninti <= 0 || int64(groups) > math.MaxInt64/(ninti*8) {
		return -1
	}
	return int64(groups) * ninti * 8
}

// ReadFile opens path and reads it with Read. The file is always closed.
func ReadFile(path string, out *matrix.Dense, opts ...Option) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, diag.Fatalf(diag.CodeFluxOpen, path, "unable to open RTFLUX file %s", path).Wrap(err)
	}
	defer f.Close()

	opts = append([]Option{WithName(path)}, opts...)
	return Read(bufio.NewReader(f), out, opts...)
}
