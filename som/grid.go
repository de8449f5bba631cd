package som

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Coord is a neuron position in the map.
type Coord struct {
	Row, Col int
}

// Grid keeps rows*columns prototypes in a single dense matrix,
// one matrix row per neuron, in row-major neuron order.
type Grid struct {
	rows, columns int
	weights       *mat.Dense
}

// NewGrid allocates a zero valued grid.
func NewGrid(rows, columns, dimensions int) (*Grid, error) {
	if rows <= 0 || columns <= 0 || dimensions <= 0 {
		return nil, &ErrInvalidShape{Rows: rows, Columns: columns, Dimensions: dimensions}
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		weights: mat.NewDense(rows*columns, dimensions, nil),
	}, nil
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Columns() int { return g.columns }

func (g *Grid) Dimensions() int {
	_, c := g.weights.Dims()
	return c
}

// Prototype returns the weights of the neuron at (row, col).
// The returned slice aliases the grid storage.
func (g *Grid) Prototype(row, col int) []float64 {
	return g.weights.RawRowView(row*g.columns + col)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:    g.rows,
		columns: g.columns,
		weights: mat.DenseCopyOf(g.weights),
	}
}

// NeuronsInitializer sets initial values of the neuron weights.
type NeuronsInitializer interface {
	Init(grid *Grid)
}

// RandWeightsInitializer sets weights to random [0.0,1.0) values
// rounded down to two decimal places.
type RandWeightsInitializer struct {
	Rand *rand.Rand
}

func (initializer *RandWeightsInitializer) Init(grid *Grid) {
	rnd := initializer.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i := 0; i < grid.rows; i++ {
		for j := 0; j < grid.columns; j++ {
			weights := grid.Prototype(i, j)
			for k := range weights {
				weights[k] = math.Floor(rnd.Float64()*100) / 100
			}
		}
	}
}
