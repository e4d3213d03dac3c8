package sentimental

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxFeatures caps the fitted vocabulary.
const DefaultMaxFeatures = 5000

// termRE selects terms of two or more word characters.
var termRE = regexp.MustCompile(`\b\w\w+\b`)

// SparseVector is one row of a SparseMatrix. Indices are ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Dense expands v to a vector of length cols.
func (v SparseVector) Dense(cols int) []float64 {
	out := make([]float64, cols)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}

// SparseMatrix holds TF-IDF weights, one row per document.
type SparseMatrix struct {
	Rows []SparseVector
	Cols int
}

// Dims returns the number of rows and columns.
func (m SparseMatrix) Dims() (int, int) {
	return len(m.Rows), m.Cols
}

// Select returns the rows at idx, in that order.
func (m SparseMatrix) Select(idx []int) SparseMatrix {
	rows := make([]SparseVector, len(idx))
	for i, r := range idx {
		rows[i] = m.Rows[r]
	}
	return SparseMatrix{Rows: rows, Cols: m.Cols}
}

// TfidfVectorizer converts processed sentences into L2-normalized TF-IDF rows.
// The vocabulary is fitted once; later text goes through Transform.
type TfidfVectorizer struct {
	MaxFeatures int

	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewTfidfVectorizer returns an unfitted vectorizer keeping at most
// maxFeatures terms (no limit when maxFeatures <= 0).
func NewTfidfVectorizer(maxFeatures int) *TfidfVectorizer {
	return &TfidfVectorizer{MaxFeatures: maxFeatures}
}

// Fitted reports whether the vocabulary has been built.
func (v *TfidfVectorizer) Fitted() bool {
	return v.vocabulary != nil
}

// Vocabulary returns the fitted terms in column order.
func (v *TfidfVectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the inverse document frequency of every column.
func (v *TfidfVectorizer) IDF() []float64 {
	return append([]float64(nil), v.idf...)
}

// Fit learns the vocabulary and idf weights from docs.
func (v *TfidfVectorizer) Fit(docs []string) error {
	if v.Fitted() {
		return ErrAlreadyFitted
	}

	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range analyze(doc) {
			counts[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(counts) == 0 {
		return ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		// Most frequent first; the stable sort keeps ties alphabetical.
		sort.SliceStable(terms, func(i, j int) bool {
			return counts[terms[i]] > counts[terms[j]]
		})
		terms = terms[:v.MaxFeatures]
		sort.Strings(terms)
	}

	n := float64(len(docs))
	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return nil
}

// FitTransform fits the vectorizer on docs and returns their weights.
func (v *TfidfVectorizer) FitTransform(docs []string) (SparseMatrix, error) {
	if err := v.Fit(docs); err != nil {
		return SparseMatrix{}, err
	}
	return v.Transform(docs)
}

// Transform weights docs against the fitted vocabulary. Terms outside the
// vocabulary are ignored.
func (v *TfidfVectorizer) Transform(docs []string) (SparseMatrix, error) {
	if !v.Fitted() {
		return SparseMatrix{}, ErrNotFitted
	}

	m := SparseMatrix{Rows: make([]SparseVector, len(docs)), Cols: len(v.terms)}
	for i, doc := range docs {
		m.Rows[i] = v.transformOne(doc)
	}
	return m, nil
}

func (v *TfidfVectorizer) transformOne(doc string) SparseVector {
	tf := make(map[int]float64)
	for _, term := range analyze(doc) {
		if idx, found := v.vocabulary[term]; found {
			tf[idx]++
		}
	}

	row := SparseVector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		row.Indices = append(row.Indices, idx)
	}
	sort.Ints(row.Indices)
	for _, idx := range row.Indices {
		row.Values = append(row.Values, tf[idx]*v.idf[idx])
	}

	if len(row.Values) == 0 {
		return row
	}
	if norm := floats.Norm(row.Values, 2); norm > 0 {
		floats.Scale(1/norm, row.Values)
	}
	return row
}

// analyze lowercases doc and extracts its terms.
func analyze(doc string) []string {
	return termRE.FindAllString(strings.ToLower(doc), -1)
}
