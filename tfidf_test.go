package sentimental

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestTfidfFit(t *testing.T) {
	req := require.New(t)

	v := NewTfidfVectorizer(DefaultMaxFeatures)
	x, err := v.FitTransform([]string{"love it", "hate it", "love love"})
	req.NoError(err)

	req.Equal([]string{"hate", "it", "love"}, v.Vocabulary())
	rows, cols := x.Dims()
	req.Equal(3, rows)
	req.Equal(3, cols)

	idf := v.IDF()
	req.InDelta(math.Log(4.0/2.0)+1, idf[0], 1e-12)
	req.InDelta(math.Log(4.0/3.0)+1, idf[1], 1e-12)
	req.InDelta(math.Log(4.0/3.0)+1, idf[2], 1e-12)

	for i, row := range x.Rows {
		req.InDelta(1.0, floats.Norm(row.Values, 2), 1e-12, "row %d", i)
	}

	// "love love" only has the love column
	req.Equal([]int{2}, x.Rows[2].Indices)
}

func TestTfidfIgnoresShortTerms(t *testing.T) {
	v := NewTfidfVectorizer(0)
	require.NoError(t, v.Fit([]string{"a b love ! ?"}))
	assert.Equal(t, []string{"love"}, v.Vocabulary())
}

func TestTfidfMaxFeatures(t *testing.T) {
	tests := []struct {
		name     string
		docs     []string
		max      int
		expected []string
	}{
		{
			name:     "most frequent first",
			docs:     []string{"love it", "hate it", "love love"},
			max:      2,
			expected: []string{"it", "love"},
		},
		{
			name:     "ties broken alphabetically",
			docs:     []string{"bb aa", "cc dd"},
			max:      2,
			expected: []string{"aa", "bb"},
		},
		{
			name:     "no limit",
			docs:     []string{"bb aa", "cc dd"},
			max:      0,
			expected: []string{"aa", "bb", "cc", "dd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTfidfVectorizer(tt.max)
			require.NoError(t, v.Fit(tt.docs))
			assert.Equal(t, tt.expected, v.Vocabulary())
		})
	}
}

func TestTfidfTransformUnknownTerms(t *testing.T) {
	req := require.New(t)

	v := NewTfidfVectorizer(DefaultMaxFeatures)
	req.NoError(v.Fit([]string{"love it", "hate it"}))

	x, err := v.Transform([]string{"completely unseen words", "", "love unseen"})
	req.NoError(err)
	req.Equal(3, len(x.Rows))
	req.Equal(3, x.Cols)
	req.Zero(x.Rows[0].Len())
	req.Zero(x.Rows[1].Len())
	req.Equal(1, x.Rows[2].Len())
	req.InDelta(1.0, x.Rows[2].Values[0], 1e-12)
	req.Equal([]float64{0, 0, 1}, x.Rows[2].Dense(x.Cols))
}

func TestTfidfErrors(t *testing.T) {
	req := require.New(t)

	v := NewTfidfVectorizer(DefaultMaxFeatures)
	_, err := v.Transform([]string{"love"})
	req.ErrorIs(err, ErrNotFitted)

	req.ErrorIs(v.Fit([]string{"", "! ?"}), ErrEmptyVocabulary)
	req.False(v.Fitted())

	req.NoError(v.Fit([]string{"love it"}))
	req.ErrorIs(v.Fit([]string{"hate it"}), ErrAlreadyFitted)
	req.Equal([]string{"it", "love"}, v.Vocabulary())
}

func TestSparseMatrixSelect(t *testing.T) {
	m := SparseMatrix{
		Rows: []SparseVector{
			{Indices: []int{0}, Values: []float64{1}},
			{Indices: []int{1}, Values: []float64{2}},
			{Indices: []int{2}, Values: []float64{3}},
		},
		Cols: 3,
	}

	sub := m.Select([]int{2, 0})
	rows, cols := sub.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []float64{0, 0, 3}, sub.Rows[0].Dense(cols))
	assert.Equal(t, []float64{1, 0, 0}, sub.Rows[1].Dense(cols))
}
