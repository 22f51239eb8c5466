package distance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/memvec/distance"
	"github.com/hupe1980/memvec/testutil"
)

// refCosineDistance computes the reference value in float64 via gonum.
func refCosineDistance(a, b []float32) float64 {
	fa := make([]float64, len(a))
	fb := make([]float64, len(b))
	for i := range a {
		fa[i] = float64(a[i])
		fb[i] = float64(b[i])
	}

	na := floats.Norm(fa, 2)
	nb := floats.Norm(fb, 2)
	if na == 0 || nb == 0 {
		return 1.0
	}
	return 1.0 - floats.Dot(fa, fb)/(na*nb)
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: 2},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 1},
		{name: "zero left", a: []float32{0, 0}, b: []float32{1, 2}, want: 1},
		{name: "zero right", a: []float32{1, 2}, b: []float32{0, 0}, want: 1},
		{name: "both zero", a: []float32{0, 0}, b: []float32{0, 0}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := distance.CosineDistance(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineDistanceDimensionMismatch(t *testing.T) {
	_, err := distance.CosineDistance([]float32{1, 2, 3}, []float32{1, 2})
	require.Error(t, err)

	var dm *distance.ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 3, dm.Expected)
	assert.Equal(t, 2, dm.Actual)

	_, err = distance.CosineSimilarity([]float32{1}, []float32{1, 2})
	assert.Error(t, err)
}

func TestCosineMatchesReference(t *testing.T) {
	rng := testutil.NewRNG(42)
	vecs := rng.UnitVectors(64, 128)

	for i := 0; i < len(vecs); i += 2 {
		got := distance.Cosine(vecs[i], vecs[i+1])
		want := refCosineDistance(vecs[i], vecs[i+1])
		assert.InDelta(t, want, float64(got), 1e-5)
	}
}

func TestCosineSimilarityComplement(t *testing.T) {
	rng := testutil.NewRNG(7)
	a := rng.UnitVector(32)
	b := rng.UnitVector(32)

	sim, err := distance.CosineSimilarity(a, b)
	require.NoError(t, err)
	dist, err := distance.CosineDistance(a, b)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, float64(sim+dist), 1e-6)
}

func TestDotAndMagnitude(t *testing.T) {
	assert.InDelta(t, 11, distance.Dot([]float32{1, 2}, []float32{3, 4}), 1e-6)
	assert.InDelta(t, 5, distance.Magnitude([]float32{3, 4}), 1e-6)
	assert.InDelta(t, 0, distance.Magnitude(nil), 1e-6)
}
