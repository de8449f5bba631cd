package som

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// NoAssignment is printed for neurons which won no sample.
const NoAssignment = "-"

// LabelMap counts, for every neuron, the labels of the samples it won.
type LabelMap struct {
	rows, columns int
	tallies       []map[int]int
}

func newLabelMap(rows, columns int) *LabelMap {
	tallies := make([]map[int]int, rows*columns)
	for i := range tallies {
		tallies[i] = make(map[int]int)
	}
	return &LabelMap{rows: rows, columns: columns, tallies: tallies}
}

func (lm *LabelMap) Rows() int    { return lm.rows }
func (lm *LabelMap) Columns() int { return lm.columns }

// Tally returns a copy of the label counts of the neuron at (row, col).
func (lm *LabelMap) Tally(row, col int) map[int]int {
	tally := lm.tallies[row*lm.columns+col]
	out := make(map[int]int, len(tally))
	for label, count := range tally {
		out[label] = count
	}
	return out
}

// Majority returns the most frequent label of the neuron at (row, col).
// Equal counts resolve to the smallest label. ok is false when
// the neuron won no sample.
func (lm *LabelMap) Majority(row, col int) (label int, ok bool) {
	best := 0
	for l, count := range lm.tallies[row*lm.columns+col] {
		if !ok || count > best || (count == best && l < label) {
			label, best, ok = l, count, true
		}
	}
	return label, ok
}

// AssignLabels makes a full pass over the data set and counts the label of
// every sample at its BMU. The grid is not modified, so the result depends
// on the grid and the data set only.
func (som *SOM) AssignLabels(set *DataSet) (*LabelMap, error) {
	if err := set.validate(som.sampleWidth()); err != nil {
		return nil, err
	}
	som.Logger.Info().Int("samples", set.Len()).Msg("assign labels - start")

	bmus := make([]Coord, set.Len())
	workers := som.Workers
	if workers < 1 {
		workers = 1
	}

	sel := &SequentialSelector{}
	sel.Init(set)

	var g errgroup.Group
	g.SetLimit(workers)
	for {
		idx, err := sel.Next()
		if errors.Is(err, ErrNoDataLeft) {
			break
		}
		g.Go(func() error {
			bmu, err := som.BMU(set.Vectors[idx])
			if err != nil {
				return fmt.Errorf("find bmu for sample %d: %w", idx, err)
			}
			bmus[idx] = bmu
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels := newLabelMap(som.grid.rows, som.grid.columns)
	for i, bmu := range bmus {
		labels.tallies[bmu.Row*labels.columns+bmu.Col][set.Labels[i]]++
	}
	som.Logger.Info().Msg("assign labels - end")
	return labels, nil
}

// Classify returns the majority label of the vector's BMU.
func (som *SOM) Classify(vector []float64, labels *LabelMap) (int, bool, error) {
	bmu, err := som.BMU(vector)
	if err != nil {
		return 0, false, err
	}
	label, ok := labels.Majority(bmu.Row, bmu.Col)
	return label, ok, nil
}

// Report writes the majority label of every neuron,
// one map row per line.
func Report(w io.Writer, labels *LabelMap) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("Most common labels for each map node:\n"); err != nil {
		return err
	}
	for i := 0; i < labels.rows; i++ {
		for j := 0; j < labels.columns; j++ {
			token := NoAssignment
			if label, ok := labels.Majority(i, j); ok {
				token = strconv.Itoa(label)
			}
			if _, err := bw.WriteString(token + " "); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
