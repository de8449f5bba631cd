package som

import "gonum.org/v1/gonum/floats"

// DistanceFunc calculates distance between a neuron prototype
// and a sample vector.
type DistanceFunc interface {
	Apply(prototype, sample []float64) (float64, error)
}

// SampleWidthFunc is implemented by distance functions whose samples
// are longer than the prototypes.
type SampleWidthFunc interface {
	SampleWidth(dimensions int) int
}

// EuclideanDistanceFunc computes the L2 distance over the prototype components.
//
// TrailingFields is the number of extra fields a sample carries after its
// features (for example a label kept inside the record). They are never read,
// but the sample length must be exactly len(prototype)+TrailingFields.
type EuclideanDistanceFunc struct {
	TrailingFields int
}

func (ed *EuclideanDistanceFunc) Apply(prototype, sample []float64) (float64, error) {
	if len(sample) != len(prototype)+ed.TrailingFields {
		return 0, &ErrDimensionMismatch{Expected: len(prototype) + ed.TrailingFields, Actual: len(sample)}
	}
	return floats.Distance(prototype, sample[:len(prototype)], 2), nil
}

// SampleWidth returns the sample length expected for dimensions long prototypes.
func (ed *EuclideanDistanceFunc) SampleWidth(dimensions int) int {
	return dimensions + ed.TrailingFields
}

// Manhattan returns the grid distance |x1-x2| + |y1-y2|.
func Manhattan(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
