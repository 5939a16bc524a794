// SPDX-License-Identifier: MIT

package rtflux

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Write emits h and the group-major flux values (len NGrp×NIntI) as an
// RTFLUX file in the byte order selected by opts (native by default).
// NDim, NGrp, NIntI and NBlok must be positive.
func Write(w io.Writer, h Header, flux []float64, opts ...Option) error {
	o := buildOptions(opts)
	if h.NGrp <= 0 || h.NIntI <= 0 || h.NBlok <= 0 {
		return fmt.Errorf("%w: ngrp=%d ninti=%d nblok=%d", ErrShape, h.NGrp, h.NIntI, h.NBlok)
	}
	if len(flux) != int(h.NGrp)*int(h.NIntI) {
		return fmt.Errorf("%w: have %d values, want %d", ErrShape, len(flux), int(h.NGrp)*int(h.NIntI))
	}

	bw := bufio.NewWriter(w)
	record := func(size int, data any) error {
		if err := binary.Write(bw, o.ByteOrder, int32(size)); err != nil {
			return err
		}
		if err := binary.Write(bw, o.ByteOrder, data); err != nil {
			return err
		}
		return binary.Write(bw, o.ByteOrder, int32(size))
	}

	var title titleRecord
	for i := range title.Title {
		title.Title[i] = ' '
	}
	copy(title.Title[:], h.Title)
	title.Version = h.Version
	if err := record(binary.Size(title), &title); err != nil {
		return err
	}

	dim := dimRecord{
		NDim: h.NDim, NGrp: h.NGrp, NIntI: h.NIntI, NIntJ: h.NIntJ, NIntK: h.NIntK,
		Iter: h.Iter, EffK: h.EffK, Power: h.Power, NBlok: h.NBlok,
	}
	if err := record(binary.Size(dim), &dim); err != nil {
		return err
	}

	ninti := int(h.NIntI)
	for b := 0; b < int(h.NBlok); b++ {
		lo, hi, ok := h.BlockRange(b)
		if !ok {
			continue
		}
		block := flux[lo*ninti : (hi+1)*ninti]
		if err := record(8*len(block), block); err != nil {
			return err
		}
	}

	return bw.Flush()
}
