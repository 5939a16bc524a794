// SPDX-License-Identifier: MIT

package flux

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/matrix"
	"github.com/katalvlaran/nucprep/rtflux"
)

// IntervalContainer receives one matrix per flux description.
type IntervalContainer interface {
	Count() int
	StoreMatrix(m *matrix.Dense, scale float64) error
}

// GroupStructure supplies the energy-group count.
type GroupStructure interface {
	NumGroups() int
	SetNumFluxes(n int)
}

// Options configures CrossReference.
type Options struct {
	Logger    *zap.Logger
	ByteOrder binary.ByteOrder // RTFLUX byte order; nil means native
}

// Option is a functional option for Options.
type Option func(*Options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithByteOrder reads RTFLUX files in the given byte order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) { o.ByteOrder = order }
}

// CrossReference reads every descriptor's spectrum and stores it into
// intervals, in declaration order. With no intervals or no groups there is
// nothing to read; only the flux count is recorded.
func CrossReference(descs []Descriptor, intervals IntervalContainer, groups GroupStructure, opts ...Option) error {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	numIntervals, numGroups := intervals.Count(), groups.NumGroups()
	groups.SetNumFluxes(len(descs))
	o.Logger.Info("assigning fluxes to each interval", zap.Int("fluxes", len(descs)))
	if numIntervals <= 0 || numGroups <= 0 {
		o.Logger.Debug("no flux data to assign",
			zap.Int("intervals", numIntervals), zap.Int("groups", numGroups))
		return nil
	}

	for _, d := range descs {
		if d.Format == FormatHeader {
			continue
		}
		o.Logger.Debug("assigning flux", zap.String("flux", d.Name), zap.Stringer("format", d.Format))

		m, err := matrix.NewDense(numIntervals, numGroups)
		if err != nil {
			return err
		}
		if err = d.load(m, o); err != nil {
			return err
		}
		if err = intervals.StoreMatrix(m, d.Scale); err != nil {
			return err
		}
	}

	o.Logger.Debug("assigned fluxes to each interval", zap.Int("fluxes", len(descs)))
	return nil
}

func (d Descriptor) load(m *matrix.Dense, o Options) error {
	if d.Skip < 0 {
		return fmt.Errorf("%w: flux %s", rtflux.ErrNegativeSkip, d.Name)
	}
	if d.Format == FormatRTFLUX {
		ropts := []rtflux.Option{rtflux.WithSkip(d.Skip), rtflux.WithLogger(o.Logger)}
		if o.ByteOrder != nil {
			ropts = append(ropts, rtflux.WithByteOrder(o.ByteOrder))
		}
		h, err := rtflux.ReadFile(d.File, m, ropts...)
		if err != nil {
			return err
		}
		o.Logger.Debug("rtflux header", zap.String("title", h.Title),
			zap.Int32("ngrp", h.NGrp), zap.Int32("ninti", h.NIntI), zap.Int32("nblok", h.NBlok))
		return nil
	}

	f, err := os.Open(d.File)
	if err != nil {
		return diag.Fatalf(diag.CodeFluxOpen, d.File, "unable to open flux file %s", d.File).Wrap(err)
	}
	defer f.Close()
	return ReadText(bufio.NewReader(f), d.File, d.Skip, m)
}
