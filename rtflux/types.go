// SPDX-License-Identifier: MIT

package rtflux

import (
	"encoding/binary"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// titleLen is the byte length of HNAME plus HUSE(1..2).
const titleLen = 24

// Header carries the file identification and dimension records.
type Header struct {
	Title   string // HNAME/HUSE, trailing blanks trimmed
	Version int32  // IVERS
	NDim    int32
	NGrp    int32
	NIntI   int32
	NIntJ   int32
	NIntK   int32
	Iter    int32
	EffK    float32
	Power   float32
	NBlok   int32
}

// GroupsPerBlock returns the number of groups in every block but the last.
func (h Header) GroupsPerBlock() int {
	if h.NBlok <= 0 || h.NGrp <= 0 {
		return 0
	}
	return int((h.NGrp-1)/h.NBlok + 1)
}

// BlockRange returns the first and last group (inclusive) of block b.
// ok is false for blocks holding no groups.
func (h Header) BlockRange(b int) (lo, hi int, ok bool) {
	per := h.GroupsPerBlock()
	lo = b * per
	hi = min(int(h.NGrp)-1, (b+1)*per-1)
	return lo, hi, per > 0 && lo <= hi
}

// wire images of the first two records.
type titleRecord struct {
	Title   [titleLen]byte
	Version int32
}

type dimRecord struct {
	NDim, NGrp, NIntI, NIntJ, NIntK, Iter int32
	EffK, Power                           float32
	NBlok                                 int32
}

func (t titleRecord) header() Header {
	return Header{Title: strings.TrimRight(string(t.Title[:]), " \x00"), Version: t.Version}
}

// Options configures Read and Write.
type Options struct {
	Skip          int
	ByteOrder     binary.ByteOrder
	StrictMarkers bool
	Name          string // file name used in diagnostics
	Logger        *zap.Logger
}

// Option is a functional option for Options.
type Option func(*Options)

// WithSkip discards the first n intervals of every group.
// Negative values panic with ErrNegativeSkip.
func WithSkip(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrNegativeSkip.Error())
		}
		o.Skip = n
	}
}

// WithByteOrder overrides the native byte order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) {
		if order != nil {
			o.ByteOrder = order
		}
	}
}

// WithStrictMarkers requires every record's leading and trailing length
// markers to equal the record's byte length.
func WithStrictMarkers() Option {
	return func(o *Options) { o.StrictMarkers = true }
}

// WithName sets the file name reported in diagnostics.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns native byte order, no skip, loose markers.
func DefaultOptions() Options {
	return Options{ByteOrder: binary.NativeEndian, Name: "RTFLUX", Logger: zap.NewNop()}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	// ErrNegativeSkip is the panic message for WithSkip(n<0).
	ErrNegativeSkip = errors.New("rtflux: skip must be non-negative")

	// ErrMarker indicates a record length marker that does not match the record.
	ErrMarker = errors.New("rtflux: record length marker mismatch")

	// ErrShape indicates a Write payload whose length is not NGrp×NIntI.
	ErrShape = errors.New("rtflux: flux payload does not match header dimensions")
)
