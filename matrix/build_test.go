package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/itemnet/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObservations_Transposes verifies that item j becomes column j.
func TestObservations_Transposes(t *testing.T) {
	vecs := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
	}
	m, err := matrix.Observations(vecs)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 3, r, "rows = embedding dimensions")
	assert.Equal(t, 2, c, "cols = items")
	assert.Equal(t, 4.0, m.At(0, 1))
	assert.Equal(t, 3.0, m.At(2, 0))
}

// TestFromRows_Shape keeps the natural items × dims layout.
func TestFromRows_Shape(t *testing.T) {
	m, err := matrix.FromRows([][]float32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 6.0, m.At(2, 1))
}

// TestObservations_Errors covers the sentinel set of the constructors.
func TestObservations_Errors(t *testing.T) {
	_, err := matrix.Observations(nil)
	assert.ErrorIs(t, err, matrix.ErrEmpty)

	_, err = matrix.Observations([][]float32{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRaggedRows)

	_, err = matrix.FromRows([][]float32{{1, float32(math.NaN())}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}
