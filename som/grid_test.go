package som_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voievodin/self-organizing-map/som"
)

// fixedInitializer copies one vector per neuron in row-major order.
type fixedInitializer [][]float64

func (fi fixedInitializer) Init(grid *som.Grid) {
	for i := 0; i < grid.Rows(); i++ {
		for j := 0; j < grid.Columns(); j++ {
			copy(grid.Prototype(i, j), fi[i*grid.Columns()+j])
		}
	}
}

func TestRandWeightsInitializerQuantizesToHundredths(t *testing.T) {
	somap, err := som.New(6, 5, 16, som.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	grid := somap.Grid()
	for i := 0; i < grid.Rows(); i++ {
		for j := 0; j < grid.Columns(); j++ {
			for _, w := range grid.Prototype(i, j) {
				require.GreaterOrEqual(t, w, 0.0)
				require.Less(t, w, 1.0)
				require.InDelta(t, math.Round(w*100), w*100, 1e-9, "weight %v is not a multiple of 0.01", w)
			}
		}
	}
}

func TestSeededMapsAreReproducible(t *testing.T) {
	a, err := som.New(3, 3, 4, som.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	b, err := som.New(3, 3, 4, som.WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.Grid().Prototype(i, j), b.Grid().Prototype(i, j))
		}
	}
}

func TestNewRejectsInvalidShape(t *testing.T) {
	for _, shape := range [][3]int{{0, 2, 2}, {2, 0, 2}, {2, 2, 0}, {-1, 2, 2}} {
		_, err := som.New(shape[0], shape[1], shape[2])

		var invalid *som.ErrInvalidShape
		assert.ErrorAs(t, err, &invalid, "shape %v", shape)
	}
}

func TestGridLayout(t *testing.T) {
	grid, err := som.NewGrid(2, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, 3, grid.Columns())
	assert.Equal(t, 2, grid.Dimensions())

	fixedInitializer{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {8, 9}, {10, 11}}.Init(grid)
	assert.Equal(t, []float64{2, 3}, grid.Prototype(0, 1))
	assert.Equal(t, []float64{6, 7}, grid.Prototype(1, 0))

	clone := grid.Clone()
	grid.Prototype(1, 2)[0] = 100
	assert.Equal(t, []float64{10, 11}, clone.Prototype(1, 2))
}

func TestGridSnapshotDoesNotAliasMap(t *testing.T) {
	somap, err := som.New(2, 2, 2, som.WithInitializer(fixedInitializer{{0, 0}, {0, 0}, {0, 0}, {0, 0}}))
	require.NoError(t, err)

	somap.Grid().Prototype(0, 0)[0] = 5
	assert.Equal(t, []float64{0, 0}, somap.Grid().Prototype(0, 0))
}
