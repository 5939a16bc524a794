// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nucprep/composition"
	"github.com/katalvlaran/nucprep/config"
	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/flux"
)

const problem = `
element_library: elelib.std
material_library: /data/matlib
search_paths: [data]
groups: 2
intervals: [core, blanket]
mixtures:
  - name: shield
    components:
      - {type: material, name: SS316, density: 0.9, volume_fraction: 0.8}
      - {type: element, name: fe, density: -1.5, volume_fraction: 0.2}
  - name: liner
    components:
      - {type: like, name: shield, volume_fraction: 0.5}
      - {type: target isotope, name: fe-56, density: 2e22}
fluxes:
  - {name: fw, file: fluxin, scale: 1e10, skip: 1}
  - {name: core, file: /abs/rtflux, format: rtflux}
logging: {level: debug}
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elelib.std"), nil, 0o644))
	path := filepath.Join(dir, "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(problem), 0o644))

	p, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, p.Dir)
	assert.Equal(t, filepath.Join(dir, "elelib.std"), p.ElementLibrary)
	assert.Equal(t, "/data/matlib", p.MaterialLibrary)
	assert.Equal(t, []string{filepath.Join(dir, "data")}, p.SearchPaths)
	assert.Equal(t, filepath.Join(dir, config.DefaultOutput), p.Output)
	assert.Equal(t, "debug", p.Logging.Level)
	assert.Len(t, p.LibraryOptions(), 3)

	mixes, err := p.BuildMixtures()
	require.NoError(t, err)
	require.Len(t, mixes, 2)

	shield := mixes[0].Components().Nodes()
	assert.Equal(t, composition.KindMaterial, shield[0].Kind)
	assert.Equal(t, composition.Absolute(0.9), shield[0].Density)
	assert.Equal(t, composition.ScaleReference(1.5), shield[1].Density)
	assert.InDelta(t, 1.0, mixes[0].VolumeFraction(), 1e-12)

	liner := mixes[1].Components().Nodes()
	assert.Equal(t, composition.KindSimilar, liner[0].Kind)
	assert.Equal(t, composition.KindTargetIsotope, liner[1].Kind)
	assert.Equal(t, 1.0, liner[1].VolumeFraction)

	descs, err := p.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []flux.Descriptor{
		{Format: flux.FormatDefault, Skip: 1, Scale: 1e10, Name: "fw", File: filepath.Join(dir, "fluxin")},
		{Format: flux.FormatRTFLUX, Scale: 1, Name: "core", File: "/abs/rtflux"},
	}, descs)
}

func TestExplicitZeroScaleIsKept(t *testing.T) {
	p, err := config.Parse([]byte(`
element_library: e
groups: 2
intervals: [a]
fluxes:
  - {name: off, file: x, scale: 0}
  - {name: on, file: y}
`))
	require.NoError(t, err)

	descs, err := p.Descriptors()
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, 0.0, descs[0].Scale)
	assert.Equal(t, 1.0, descs[1].Scale)
}

func TestLibraryNameLeftForSearchPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("element_library: elelib.std\n"), 0o644))

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elelib.std", p.ElementLibrary)
	assert.Len(t, p.LibraryOptions(), 2)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no element library", "groups: 1\n"},
		{"flux without groups", "element_library: e\nintervals: [a]\nfluxes: [{name: f, file: x}]\n"},
		{"flux without intervals", "element_library: e\ngroups: 2\nfluxes: [{name: f, file: x}]\n"},
		{"bad flux format", "element_library: e\ngroups: 2\nintervals: [a]\nfluxes: [{name: f, file: x, format: z}]\n"},
		{"duplicate flux", "element_library: e\ngroups: 2\nintervals: [a]\nfluxes: [{name: f, file: x}, {name: f, file: y}]\n"},
		{"negative skip", "element_library: e\ngroups: 2\nintervals: [a]\nfluxes: [{name: f, file: x, skip: -1}]\n"},
		{"bad kind", "element_library: e\nmixtures: [{name: m, components: [{type: alloy, name: x}]}]\n"},
		{"duplicate mixture", "element_library: e\nmixtures: [{name: m}, {name: m}]\n"},
		{"material without library", "element_library: e\nmixtures: [{name: m, components: [{type: material, name: SS}]}]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestParseBadFluxFormatCarriesDiagnostic(t *testing.T) {
	_, err := config.Parse([]byte("element_library: e\ngroups: 2\nintervals: [a]\nfluxes: [{name: f, file: x, format: q}]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error 140")
	_, ok := diag.CodeOf(err)
	assert.False(t, ok, "validation reports text, not a wrapped diagnostic")
}

func TestParseBadYAML(t *testing.T) {
	_, err := config.Parse([]byte("groups: [1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
