// Package som implements a Self-Organizing Map trained over labeled vectors.
// See https://en.wikipedia.org/wiki/Self-organizing_map.
//
// SOM - Self-Organizing Map
// BMU - Best Matching Unit
package som

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSteps        = 100000
	DefaultLearnRateMax = 0.5
)

// ErrNoBMU is returned when no neuron has a finite distance to the vector.
var ErrNoBMU = errors.New("no best matching unit")

// Selector is an interface for selecting data vectors
// from the data set in implementation specific manner.
type Selector interface {
	// Init initializes this Selector with the data set.
	Init(set *DataSet)

	// Next returns the index of the next data vector,
	// or an error if there are no data vectors left.
	Next() (int, error)
}

// Observer receives the schedule values of every learning step.
// Radius is -1 when the influence function has no hard border.
type Observer interface {
	ObserveStep(step, steps, radius int, learnRate float64)
}

// SOM is a map itself.
// It owns the prototype grid, teaches it and then uses the results.
type SOM struct {
	grid *Grid

	Steps     int
	Selector  Selector
	Restraint RestraintFunc
	Influence InfluenceFunc
	Distance  DistanceFunc
	Observer  Observer

	// Workers bounds the BMU lookups running in parallel during label
	// assignment. Learning is always sequential.
	Workers int

	Logger zerolog.Logger
}

type options struct {
	rnd         *rand.Rand
	initializer NeuronsInitializer
	logger      *zerolog.Logger
}

// Option configures map construction.
type Option func(*options)

// WithRand sets the random source used for weights initialization
// and sample selection.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// WithInitializer replaces the random weights initializer.
func WithInitializer(initializer NeuronsInitializer) Option {
	return func(o *options) {
		o.initializer = initializer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// New creates a rows*columns map of dimensions long prototypes
// and initializes the weights.
func New(rows, columns, dimensions int, opts ...Option) (*SOM, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.initializer == nil {
		o.initializer = &RandWeightsInitializer{Rand: o.rnd}
	}
	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}

	grid, err := NewGrid(rows, columns, dimensions)
	if err != nil {
		return nil, err
	}
	o.initializer.Init(grid)

	return &SOM{
		grid:      grid,
		Steps:     DefaultSteps,
		Selector:  &RandSelector{Rand: o.rnd},
		Restraint: &LinearRestraintFunc{MaxRate: DefaultLearnRateMax},
		Influence: &ManhattanCutoffInfluenceFunc{RangeMax: rows + columns},
		Distance:  &EuclideanDistanceFunc{},
		Workers:   1,
		Logger:    logger,
	}, nil
}

// Grid returns a snapshot of the current prototypes.
func (som *SOM) Grid() *Grid {
	return som.grid.Clone()
}

// Learn runs the fixed number of training steps over the data set.
func (som *SOM) Learn(set *DataSet) error {
	if err := set.validate(som.sampleWidth()); err != nil {
		return err
	}
	if som.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", som.Steps)
	}

	steps := som.Steps
	progressEvery := max(1, steps/5)
	radiusFunc, hasRadius := som.Influence.(RadiusFunc)

	som.Selector.Init(set)
	som.Logger.Info().Int("steps", steps).Int("samples", set.Len()).Msg("train - start")
	for step := 1; step <= steps; step++ {
		if step%progressEvery == 0 {
			som.Logger.Info().
				Int("step", step).
				Float64("left_pct", 100-float64(step)*100/float64(steps)).
				Msg("train - progress")
		}

		idx, err := som.Selector.Next()
		if err != nil {
			return fmt.Errorf("select sample at step %d: %w", step, err)
		}
		vector := set.Vectors[idx]

		bmu, err := som.BMU(vector)
		if err != nil {
			return fmt.Errorf("find bmu at step %d: %w", step, err)
		}

		learnRate := som.Restraint.Apply(step, steps)
		som.fixWeights(step, steps, bmu, learnRate, vector)

		if som.Observer != nil {
			radius := -1
			if hasRadius {
				radius = radiusFunc.Radius(step, steps)
			}
			som.Observer.ObserveStep(step, steps, radius, learnRate)
		}
	}
	som.Logger.Info().Msg("train - end")
	return nil
}

func (som *SOM) sampleWidth() int {
	if sw, ok := som.Distance.(SampleWidthFunc); ok {
		return sw.SampleWidth(som.grid.Dimensions())
	}
	return som.grid.Dimensions()
}

// BMU scans the grid row by row and returns the closest neuron.
// On equal distances the first neuron in scan order wins.
func (som *SOM) BMU(vector []float64) (Coord, error) {
	bmu := Coord{Row: -1, Col: -1}
	minDistance := math.Inf(1)
	for i := 0; i < som.grid.rows; i++ {
		for j := 0; j < som.grid.columns; j++ {
			distance, err := som.Distance.Apply(som.grid.Prototype(i, j), vector)
			if err != nil {
				return bmu, err
			}
			if distance < minDistance {
				minDistance = distance
				bmu = Coord{Row: i, Col: j}
			}
		}
	}
	if bmu.Row < 0 {
		return bmu, ErrNoBMU
	}
	return bmu, nil
}

func (som *SOM) fixWeights(step, steps int, bmu Coord, learnRate float64, input DataVector) {
	for i := 0; i < som.grid.rows; i++ {
		for j := 0; j < som.grid.columns; j++ {
			influence := som.Influence.Apply(bmu, step, steps, i, j)
			if influence == 0 {
				continue
			}
			cof := learnRate * influence
			weights := som.grid.Prototype(i, j)
			for k := range weights {
				weights[k] += cof * (input[k] - weights[k])
			}
		}
	}
}

// RandSelector picks a uniformly random vector on every call,
// the same vector may be selected more than once.
type RandSelector struct {
	Rand *rand.Rand
	size int
}

func (sel *RandSelector) Init(set *DataSet) {
	if sel.Rand == nil {
		sel.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sel.size = set.Len()
}

func (sel *RandSelector) Next() (int, error) {
	if sel.size == 0 {
		return 0, ErrNoDataLeft
	}
	return sel.Rand.Intn(sel.size), nil
}

// SequentialSelector selects every data vector once, in order.
type SequentialSelector struct {
	size int
	idx  int
}

func (sel *SequentialSelector) Init(set *DataSet) {
	sel.size = set.Len()
	sel.idx = 0
}

func (sel *SequentialSelector) Next() (int, error) {
	if sel.idx >= sel.size {
		return 0, ErrNoDataLeft
	}
	idx := sel.idx
	sel.idx++
	return idx, nil
}
