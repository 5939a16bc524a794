// SPDX-License-Identifier: MIT

package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/nucprep/composition"
	"github.com/katalvlaran/nucprep/matrix"
	"github.com/katalvlaran/nucprep/store"
	"github.com/katalvlaran/nucprep/volume"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestSaveAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	mix := composition.NewMixture("shield")
	mix.AddComponent(composition.Node{Kind: composition.KindElement, Name: "fe", VolumeFraction: 1})
	mix.IncrementTotalDensity(7.87)
	isos := composition.IsotopeList{
		composition.NewIsotope("fe-56", 2.0e22, mix, 0),
		composition.NewIsotope("fe-54", 1.5e21, mix, 0),
	}

	vols := volume.NewIntervals("core")
	m, err := matrix.NewDense(1, 3)
	require.NoError(t, err)
	require.NoError(t, m.SetRow(0, []float64{1, 2, 3}))
	require.NoError(t, vols.StoreMatrix(m, 10))

	run := store.NewRun("problem.yaml", "elelib.std", "matlib")
	require.NoError(t, s.Save(ctx, run, []store.Result{{Mixture: mix, Isotopes: isos}}, vols))

	rows, err := s.Isotopes(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []store.IsotopeRow{
		{Mixture: "shield", Component: 0, Label: "fe-56", Density: 2.0e22},
		{Mixture: "shield", Component: 0, Label: "fe-54", Density: 1.5e21},
	}, rows)

	values, err := s.Spectrum(ctx, run.ID, "core", 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, values)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.True(t, run.Created.Equal(runs[0].Created))
	assert.Equal(t, "matlib", runs[0].MaterialLibrary)
}

func TestSaveWithoutFluxes(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	a, b := store.NewRun("a", "e", ""), store.NewRun("b", "e", "")
	require.NotEqual(t, a.ID, b.ID)
	require.NoError(t, s.Save(ctx, a, nil, nil))
	require.NoError(t, s.Save(ctx, b, nil, nil))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	// a duplicate run id violates the primary key and rolls back
	assert.Error(t, s.Save(ctx, a, nil, nil))
	runs, err = s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunsAreChronological(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	offsets := []time.Duration{500 * time.Millisecond, 0, 120 * time.Millisecond, 100 * time.Millisecond}
	for _, off := range offsets {
		r := store.NewRun("p", "e", "")
		r.Created = base.Add(off)
		require.NoError(t, s.Save(ctx, r, nil, nil))
	}

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 4)
	want := []time.Duration{0, 100 * time.Millisecond, 120 * time.Millisecond, 500 * time.Millisecond}
	for i, r := range runs {
		assert.True(t, base.Add(want[i]).Equal(r.Created), "run %d: %v", i, r.Created)
	}
}

func TestUnknownRun(t *testing.T) {
	s := openStore(t)
	_, err := s.Isotopes(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNoRun)
	_, err = s.Spectrum(context.Background(), uuid.New(), "core", 0)
	assert.ErrorIs(t, err, store.ErrNoRun)
}
