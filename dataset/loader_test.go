package dataset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voievodin/self-organizing-map/dataset"
	"github.com/voievodin/self-organizing-map/som"
)

func TestRead(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		opts    dataset.Options
		vectors []som.DataVector
		labels  []int
	}{
		{
			name:    "labels back",
			input:   "1,2,3\n4,5,6\n7,8,9\n",
			opts:    dataset.Options{Dimensions: 2},
			vectors: []som.DataVector{{1, 2}, {4, 5}, {7, 8}},
			labels:  []int{3, 6, 9},
		},
		{
			name:    "labels front",
			input:   "1,2,3\n4,5,6\n7,8,9\n",
			opts:    dataset.Options{Dimensions: 2, LabelsFront: true},
			vectors: []som.DataVector{{2, 3}, {5, 6}, {8, 9}},
			labels:  []int{1, 4, 7},
		},
		{
			name:    "header and labels back",
			input:   "a,b,label\n0.5,1.5,0\n2,3,1\n16,0,2\n",
			opts:    dataset.Options{Dimensions: 2, SkipFirstLine: true},
			vectors: []som.DataVector{{0.5, 1.5}, {2, 3}, {16, 0}},
			labels:  []int{0, 1, 2},
		},
		{
			name:    "header and labels front",
			input:   "label,a,b\n0,0.5,1.5\n1,2,3\n2,16,0",
			opts:    dataset.Options{Dimensions: 2, SkipFirstLine: true, LabelsFront: true},
			vectors: []som.DataVector{{0.5, 1.5}, {2, 3}, {16, 0}},
			labels:  []int{0, 1, 2},
		},
		{
			name:    "normalized",
			input:   "8,4,1\n16,0,2\n",
			opts:    dataset.Options{Dimensions: 2, Divisor: 16},
			vectors: []som.DataVector{{0.5, 0.25}, {1, 0}},
			labels:  []int{1, 2},
		},
		{
			name:    "quote in skipped header",
			input:   "a\"b,c,d\n1,2,3\n",
			opts:    dataset.Options{Dimensions: 2, SkipFirstLine: true},
			vectors: []som.DataVector{{1, 2}},
			labels:  []int{3},
		},
		{
			name:    "blank lines and spaces",
			input:   "1, 2, 3\n\n4,5,6.0\n",
			opts:    dataset.Options{Dimensions: 2},
			vectors: []som.DataVector{{1, 2}, {4, 5}},
			labels:  []int{3, 6},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := dataset.Read(strings.NewReader(tc.input), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.vectors, set.Vectors)
			assert.Equal(t, tc.labels, set.Labels)
		})
	}
}

func TestReadRejectsMalformedRecords(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{name: "too few fields", input: "1,2,3\n4,5\n", line: 2},
		{name: "too many fields", input: "1,2,3,4\n", line: 1},
		{name: "non numeric feature", input: "1,2,3\n4,x,6\n7,8,9\n", line: 2},
		{name: "fractional label", input: "1,2,3.5\n", line: 1},
		{name: "infinite label", input: "1,2,Inf\n", line: 1},
		{name: "huge label", input: "1,2,3\n1,2,1e300\n", line: 2},
		{name: "label just above int range", input: "1,2,9223372036854775808\n", line: 1},
		{name: "nan feature", input: "NaN,2,1\n", line: 1},
		{name: "infinite feature", input: "1,2,3\n4,-Inf,6\n", line: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Read(strings.NewReader(tc.input), dataset.Options{Dimensions: 2})

			var parseErr *dataset.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}

	_, err := dataset.Read(strings.NewReader("1,2\n"), dataset.Options{Dimensions: 2})
	assert.ErrorIs(t, err, dataset.ErrFieldCount)

	_, err = dataset.Read(strings.NewReader("1,2\n"), dataset.Options{})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		for k := 0; k < 4; k++ {
			sb.WriteString(strconv.Itoa(i + k))
			sb.WriteString(",")
		}
		sb.WriteString(strconv.Itoa(i % 3))
		sb.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "digits.tra")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	set, err := dataset.Load(path, dataset.Options{Dimensions: 4, Divisor: som.DefaultNormalizationDivisor})
	require.NoError(t, err)
	assert.Equal(t, 10, set.Len())
	assert.Equal(t, 4, set.Width())
	assert.Equal(t, som.DataVector{9.0 / 16, 10.0 / 16, 11.0 / 16, 12.0 / 16}, set.Vectors[9])
	assert.Equal(t, 0, set.Labels[9])

	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("run", "r1").Logger()
	_, err = dataset.Load(path, dataset.Options{Dimensions: 4, Logger: &logger})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"run":"r1"`)
	assert.Contains(t, buf.String(), "loaded data set")

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing"), dataset.Options{Dimensions: 4})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
