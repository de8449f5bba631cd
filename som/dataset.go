package som

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// DefaultNormalizationDivisor rescales the 0..16 range of the digits data.
const DefaultNormalizationDivisor = 16

type DataVector []float64

// DataSet is an ordered sequence of feature vectors
// with a label for every vector.
type DataSet struct {
	Vectors []DataVector
	Labels  []int
}

func (ds *DataSet) Add(vector DataVector, label int) error {
	if len(ds.Vectors) != 0 && ds.Width() != len(vector) {
		return &ErrDimensionMismatch{Expected: ds.Width(), Actual: len(vector)}
	}
	ds.Vectors = append(ds.Vectors, vector)
	ds.Labels = append(ds.Labels, label)
	return nil
}

func (ds *DataSet) Len() int {
	return len(ds.Vectors)
}

// Width returns the vectors length, 0 for an empty data set.
func (ds *DataSet) Width() int {
	if ds.Len() == 0 {
		return 0
	}
	return len(ds.Vectors[0])
}

// Normalize divides every vector component by divisor in place.
func (ds *DataSet) Normalize(divisor float64) error {
	if divisor == 0 {
		return errors.New("normalization divisor must not be zero")
	}
	for _, vector := range ds.Vectors {
		floats.Scale(1/divisor, vector)
	}
	return nil
}

func (ds *DataSet) validate(dimensions int) error {
	if ds.Len() == 0 {
		return ErrEmptyDataSet
	}
	if len(ds.Labels) != ds.Len() {
		return &ErrDimensionMismatch{Expected: ds.Len(), Actual: len(ds.Labels)}
	}
	for _, vector := range ds.Vectors {
		if len(vector) != dimensions {
			return &ErrDimensionMismatch{Expected: dimensions, Actual: len(vector)}
		}
	}
	return nil
}
