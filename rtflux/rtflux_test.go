// SPDX-License-Identifier: MIT

package rtflux_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/matrix"
	"github.com/katalvlaran/nucprep/rtflux"
)

// ramp returns ngrp*ninti distinct values laid out group-major.
func ramp(ngrp, ninti int) []float64 {
	out := make([]float64, ngrp*ninti)
	for g := 0; g < ngrp; g++ {
		for i := 0; i < ninti; i++ {
			out[g*ninti+i] = float64(100*(g+1) + i)
		}
	}
	return out
}

func encode(t *testing.T, h rtflux.Header, flux []float64, opts ...rtflux.Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, rtflux.Write(&buf, h, flux, opts...))
	return buf.Bytes()
}

func requireCode(t *testing.T, err error, want diag.Code) {
	t.Helper()
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok, "not a diagnostic: %v", err)
	require.Equal(t, want, code, "%v", err)
}

// TestReadTransposeWithSkip: ninti=5, ngrp=2, nblok=1, skip=1 read into a
// 3×2 matrix gives out[i][g] == buf[g*ninti + i + skip].
func TestReadTransposeWithSkip(t *testing.T) {
	h := rtflux.Header{Title: "TEST", NDim: 1, NGrp: 2, NIntI: 5, NIntJ: 1, NIntK: 1, NBlok: 1}
	flux := ramp(2, 5)
	data := encode(t, h, flux)

	out, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	got, err := rtflux.Read(bytes.NewReader(data), out, rtflux.WithSkip(1), rtflux.WithStrictMarkers())
	require.NoError(t, err)
	assert.Equal(t, "TEST", got.Title)
	assert.Equal(t, int32(5), got.NIntI)

	for i := 0; i < 3; i++ {
		for g := 0; g < 2; g++ {
			v, err := out.At(i, g)
			require.NoError(t, err)
			assert.Equal(t, flux[g*5+i+1], v, "interval %d group %d", i, g)
		}
	}
}

func TestReadMultipleBlocks(t *testing.T) {
	cases := []struct {
		name  string
		ngrp  int32
		nblok int32
	}{
		{"even split", 4, 2},
		{"short last block", 5, 2},
		{"more blocks than groups", 2, 3},
		{"one group per block", 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := rtflux.Header{NDim: 1, NGrp: tc.ngrp, NIntI: 4, NBlok: tc.nblok}
			flux := ramp(int(tc.ngrp), 4)
			data := encode(t, h, flux)

			out, err := matrix.NewDense(4, int(tc.ngrp))
			require.NoError(t, err)
			_, err = rtflux.Read(bytes.NewReader(data), out, rtflux.WithStrictMarkers())
			require.NoError(t, err)

			for g := 0; g < int(tc.ngrp); g++ {
				v, err := out.At(3, g)
				require.NoError(t, err)
				assert.Equal(t, flux[g*4+3], v)
			}
		})
	}
}

func TestBlockRange(t *testing.T) {
	h := rtflux.Header{NGrp: 5, NBlok: 2}
	assert.Equal(t, 3, h.GroupsPerBlock())
	lo, hi, ok := h.BlockRange(1)
	assert.Equal(t, []any{3, 4, true}, []any{lo, hi, ok})

	h = rtflux.Header{NGrp: 2, NBlok: 3}
	_, _, ok = h.BlockRange(2)
	assert.False(t, ok)
}

func TestReadValidation(t *testing.T) {
	base := rtflux.Header{NDim: 1, NGrp: 2, NIntI: 5, NBlok: 1}
	out := func(r, c int) *matrix.Dense {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}

	twoD := base
	twoD.NDim = 2
	_, err := rtflux.Read(bytes.NewReader(encode(t, twoD, ramp(2, 5))), out(3, 2))
	requireCode(t, err, diag.CodeRTFluxDimension)

	_, err = rtflux.Read(bytes.NewReader(encode(t, base, ramp(2, 5))), out(3, 3))
	requireCode(t, err, diag.CodeRTFluxData)
	assert.Contains(t, err.Error(), "not enough groups")

	_, err = rtflux.Read(bytes.NewReader(encode(t, base, ramp(2, 5))), out(3, 2), rtflux.WithSkip(3))
	requireCode(t, err, diag.CodeRTFluxData)
	assert.Contains(t, err.Error(), "not enough intervals")

	zeroBlocks := base
	zeroBlocks.NBlok = 0
	var buf bytes.Buffer
	require.Error(t, rtflux.Write(&buf, zeroBlocks, ramp(2, 5)))
}

func TestReadTruncated(t *testing.T) {
	h := rtflux.Header{NDim: 1, NGrp: 2, NIntI: 5, NBlok: 1}
	data := encode(t, h, ramp(2, 5))

	for _, cut := range []int{0, 10, 40, len(data) - 12} {
		m, err := matrix.NewDense(5, 2)
		require.NoError(t, err)
		_, err = rtflux.Read(bytes.NewReader(data[:cut]), m)
		requireCode(t, err, diag.CodeRTFluxData)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "cut at %d", cut)
	}
}

func TestReadExplicitByteOrder(t *testing.T) {
	h := rtflux.Header{NDim: 1, NGrp: 1, NIntI: 2, NBlok: 1}
	data := encode(t, h, []float64{1.5, 2.5}, rtflux.WithByteOrder(binary.BigEndian))

	m, err := matrix.NewDense(2, 1)
	require.NoError(t, err)
	_, err = rtflux.Read(bytes.NewReader(data), m, rtflux.WithByteOrder(binary.BigEndian), rtflux.WithStrictMarkers())
	require.NoError(t, err)
	v, _ := m.At(1, 0)
	assert.Equal(t, 2.5, v)

	_, err = rtflux.Read(bytes.NewReader(data), m, rtflux.WithByteOrder(binary.LittleEndian), rtflux.WithStrictMarkers())
	requireCode(t, err, diag.CodeRTFluxFormat)
	assert.ErrorIs(t, err, rtflux.ErrMarker)
}

func TestReadRejectsNonFinite(t *testing.T) {
	h := rtflux.Header{NDim: 1, NGrp: 1, NIntI: 2, NBlok: 1}
	data := encode(t, h, []float64{1, math.NaN()})

	m, err := matrix.NewDense(2, 1)
	require.NoError(t, err)
	_, err = rtflux.Read(bytes.NewReader(data), m)
	requireCode(t, err, diag.CodeRTFluxFormat)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rtflux")
	h := rtflux.Header{Title: "DANT", NDim: 1, NGrp: 2, NIntI: 3, NBlok: 1}
	require.NoError(t, os.WriteFile(path, encode(t, h, ramp(2, 3)), 0o644))

	m, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	got, err := rtflux.ReadFile(path, m)
	require.NoError(t, err)
	assert.Equal(t, "DANT", got.Title)

	hdr, err := rtflux.ReadHeader(bytes.NewReader(encode(t, h, ramp(2, 3))))
	require.NoError(t, err)
	assert.Equal(t, got, hdr)

	_, err = rtflux.ReadFile(filepath.Join(dir, "missing"), m)
	requireCode(t, err, diag.CodeFluxOpen)
}

// rawHeader encodes the title and dimension records by hand so that the
// header can claim sizes no writer would produce.
func rawHeader(ngrp, ninti, nblok int32) []byte {
	var buf bytes.Buffer
	put := func(v any) { _ = binary.Write(&buf, binary.NativeEndian, v) }
	put(int32(28))
	buf.WriteString("HUGE                    ")
	put(int32(0))
	put(int32(28))
	put(int32(36))
	put([]int32{1, ngrp, ninti, 1, 1, 0})
	put([]float32{1, 0})
	put(nblok)
	put(int32(36))
	return buf.Bytes()
}

func TestReadOversizedHeaderIsBounded(t *testing.T) {
	data := append(rawHeader(math.MaxInt32, math.MaxInt32, 1), make([]byte, 20)...)

	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	_, err = rtflux.Read(bytes.NewReader(data), m)
	requireCode(t, err, diag.CodeRTFluxData)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = rtflux.Read(bytes.NewReader(rawHeader(3, 4, math.MaxInt32)), m)
	requireCode(t, err, diag.CodeRTFluxData)
}

// TestReadWindowFromWiderFile reads 2 intervals × 2 groups out of a
// 4-group, 7-interval file, discarding everything outside the window.
func TestReadWindowFromWiderFile(t *testing.T) {
	h := rtflux.Header{NDim: 1, NGrp: 4, NIntI: 7, NBlok: 3}
	flux := ramp(4, 7)
	data := encode(t, h, flux)

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = rtflux.Read(bytes.NewReader(data), m, rtflux.WithSkip(3), rtflux.WithStrictMarkers())
	require.NoError(t, err)
	assert.Equal(t, "[103, 203]\n[104, 204]\n", m.String())
}
