// SPDX-License-Identifier: MIT

package library_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/library"
)

const eleLib = `# test element library
fe 55.847 26 7.874 2
  # abundances
  56 90.0
  54 10.0
cr 51.996 24 7.19 1
  52 100.0
fe 56.0 26 8.0 1
  56 100.0
`

const matLib = `# test material library
SS 8.0 2
  fe 70.0 26
  cr 30.0 24
Empty 1.0 0
SS 1.0 1
  cr 100.0 24
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseElementsDuplicateKeyOverwrites(t *testing.T) {
	eles, err := library.ParseElements(strings.NewReader(eleLib))
	require.NoError(t, err)
	require.Len(t, eles, 2)

	fe := eles["fe"]
	assert.Equal(t, 56.0, fe.A)
	assert.Equal(t, 8.0, fe.Density)
	assert.Equal(t, []library.Isotope{{Name: "56", Abundance: 100}}, fe.Isotopes)

	cr := eles["cr"]
	assert.Equal(t, 24, cr.Z)
	assert.Equal(t, 7.19, cr.Density)
}

func TestParseMaterialsKeepsRecordsSynchronized(t *testing.T) {
	mats, err := library.ParseMaterials(strings.NewReader(matLib))
	require.NoError(t, err)
	require.Len(t, mats, 3)

	assert.Equal(t, "SS", mats[0].Name)
	assert.Len(t, mats[0].Constituents, 2)
	assert.Equal(t, "Empty", mats[1].Name)
	assert.Empty(t, mats[1].Constituents)
	assert.Equal(t, library.Constituent{Element: "cr", Density: 100, Z: 24}, mats[2].Constituents[0])
}

func TestParseTruncatedRecord(t *testing.T) {
	_, err := library.ParseElements(strings.NewReader("fe 55.8 26 7.8 2\n 56 91.7\n"))
	require.ErrorIs(t, err, library.ErrTruncated)

	_, err = library.ParseMaterials(strings.NewReader("SS 8.0 x\n"))
	require.ErrorIs(t, err, library.ErrBadNumber)

	_, err = library.ParseMaterials(strings.NewReader("SS 8.0 -1\n"))
	require.ErrorIs(t, err, library.ErrBadNumber)
}

func TestParseHugeCountIsTruncated(t *testing.T) {
	_, err := library.ParseElements(strings.NewReader("fe 55.8 26 7.87 9223372036854775807\n"))
	require.ErrorIs(t, err, library.ErrTruncated)

	_, err = library.ParseMaterials(strings.NewReader("SS 8.0 9223372036854775807\nfe 70 26\n"))
	require.ErrorIs(t, err, library.ErrTruncated)
}

func TestParseIntegralRealField(t *testing.T) {
	eles, err := library.ParseElements(strings.NewReader("h 1.008 1.0 0.00009 1\n1 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, eles["h"].Z)
}

func TestOpenLoadsAndIndexes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ele.lib", eleLib)
	writeFile(t, dir, "mat.lib", matLib)

	lib, err := library.Open(
		library.WithElementLibrary("ele.lib"),
		library.WithMaterialLibrary("mat.lib"),
		library.WithSearchPaths(filepath.Join(dir, "missing"), dir),
		library.WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ele.lib"), lib.ElementPath())
	assert.Equal(t, []string{"cr", "fe"}, lib.Elements())
	assert.Equal(t, []string{"SS", "Empty"}, lib.Materials())

	// The first "SS" record wins, exactly as a scan from the top would find it.
	ss, ok := lib.Material("SS")
	require.True(t, ok)
	assert.Equal(t, 8.0, ss.Density)
	assert.Len(t, ss.Constituents, 2)

	again, _ := lib.Material("SS")
	assert.Equal(t, ss, again)

	_, ok = lib.Material("ss")
	assert.False(t, ok)
	_, ok = lib.Element("xx")
	assert.False(t, ok)
}

func TestOpenMissingLibraryIsFatal(t *testing.T) {
	_, err := library.Open(library.WithElementLibrary(filepath.Join(t.TempDir(), "nope.lib")))
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeLibraryOpen, code)
	assert.True(t, diag.IsFatal(err))
	assert.Contains(t, err.Error(), "nope.lib")
}

func TestOpenMalformedLibrary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.lib", "SS 8.0 2\n fe 70 26\n")
	_, err := library.Open(library.WithMaterialLibrary(path))
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.CodeLibraryFormat, code)
	assert.ErrorIs(t, err, library.ErrTruncated)
}
