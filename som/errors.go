package som

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataSet is returned when learning or label assignment
	// is requested for a data set without vectors.
	ErrEmptyDataSet = errors.New("data set contains no elements")

	// ErrNoDataLeft is returned by selector when there is
	// nothing to select from the corresponding data set.
	ErrNoDataLeft = errors.New("no data left")
)

// ErrDimensionMismatch indicates that a vector length disagrees
// with the dimensionality the map (or data set) was built for.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidShape indicates a non-positive map or vector size.
type ErrInvalidShape struct {
	Rows, Columns, Dimensions int
}

func (e *ErrInvalidShape) Error() string {
	return fmt.Sprintf("invalid map shape: %dx%d with %d dimensions", e.Rows, e.Columns, e.Dimensions)
}
