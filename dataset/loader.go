// Package dataset reads labeled feature vectors from comma delimited text files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voievodin/self-organizing-map/som"
)

// Options describes the record layout.
type Options struct {
	// Dimensions is the number of feature fields, the label is one more field.
	Dimensions int
	// SkipFirstLine drops a header line.
	SkipFirstLine bool
	// LabelsFront places the label at field 0 instead of field Dimensions.
	LabelsFront bool
	// Divisor normalizes the loaded vectors when positive.
	Divisor float64
	// Logger defaults to the global logger.
	Logger *zerolog.Logger
}

// ParseError describes a malformed record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrFieldCount is wrapped by ParseError when a record has the wrong number of fields.
var ErrFieldCount = errors.New("wrong number of fields")

// Load opens the file at path and reads it with Read.
func Load(path string, opts Options) (*som.DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open tokens file: %w", err)
	}
	defer f.Close()

	set, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger.Info().Str("path", path).Int("samples", set.Len()).Msg("loaded data set")
	return set, nil
}

// Read parses one record per line. Every record must hold exactly
// Dimensions+1 numeric fields, the label field being an integer.
func Read(r io.Reader, opts Options) (*som.DataSet, error) {
	if opts.Dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", opts.Dimensions)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	reader.LazyQuotes = true

	labelIdx := opts.Dimensions
	if opts.LabelsFront {
		labelIdx = 0
	}

	set := &som.DataSet{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if opts.SkipFirstLine {
				continue
			}
		}

		vector, label, err := parseRecord(record, labelIdx, opts.Dimensions)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if err := set.Add(vector, label); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}

	if opts.Divisor > 0 {
		if err := set.Normalize(opts.Divisor); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func parseRecord(record []string, labelIdx, dimensions int) (som.DataVector, int, error) {
	if len(record) != dimensions+1 {
		return nil, 0, fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, dimensions+1, len(record))
	}

	vector := make(som.DataVector, 0, dimensions)
	label := 0
	for i, field := range record {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("field %d: %w", i, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, 0, fmt.Errorf("field %d: %q is not a finite number", i, field)
		}
		if i != labelIdx {
			vector = append(vector, value)
			continue
		}
		if value != math.Trunc(value) {
			return nil, 0, fmt.Errorf("field %d: label %q is not an integer", i, field)
		}
		if value < float64(math.MinInt) || value >= -float64(math.MinInt) {
			return nil, 0, fmt.Errorf("field %d: label %q is out of range", i, field)
		}
		label = int(value)
	}
	return vector, label, nil
}
