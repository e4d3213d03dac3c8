package sentimental

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"
	"gonum.org/v1/gonum/floats"
)

// EmbeddingConfig configures word2vec training.
type EmbeddingConfig struct {
	Dim      int `validate:"gt=0"`
	Window   int `validate:"gt=0"`
	MinCount int `validate:"gte=1"`
	Iter     int `validate:"gt=0"`
	Workers  int `validate:"gt=0"`
}

// DefaultEmbeddingConfig returns the CBOW settings used for sentence embeddings.
func DefaultEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		Dim:      300,
		Window:   5,
		MinCount: 1,
		Iter:     5,
		Workers:  4,
	}
}

// Embeddings maps vocabulary tokens to dense vectors of a fixed dimension.
type Embeddings struct {
	dim     int
	vectors map[string][]float64
}

// NewEmbeddings wraps precomputed vectors. Vectors whose length is not dim are
// dropped.
func NewEmbeddings(dim int, vectors map[string][]float64) *Embeddings {
	e := &Embeddings{dim: dim, vectors: make(map[string][]float64, len(vectors))}
	for word, vec := range vectors {
		if len(vec) == dim {
			e.vectors[word] = vec
		}
	}
	return e
}

// TrainEmbeddings trains a word2vec model over token sequences. Worker
// goroutines make the resulting vectors nondeterministic.
func TrainEmbeddings(tokens [][]string, cfg EmbeddingConfig) (*Embeddings, error) {
	var corpus bytes.Buffer
	total := 0
	for _, seq := range tokens {
		if len(seq) == 0 {
			continue
		}
		corpus.WriteString(strings.Join(seq, " "))
		corpus.WriteByte('\n')
		total += len(seq)
	}
	if total == 0 {
		return NewEmbeddings(cfg.Dim, nil), nil
	}

	model, err := word2vec.New(
		word2vec.Dim(cfg.Dim),
		word2vec.Window(cfg.Window),
		word2vec.MinCount(cfg.MinCount),
		word2vec.Iter(cfg.Iter),
		word2vec.Goroutines(cfg.Workers),
		word2vec.Model(word2vec.Cbow),
		word2vec.Optimizer(word2vec.NegativeSampling),
	)
	if err != nil {
		return nil, fmt.Errorf("creating word2vec model: %w", err)
	}
	if err := model.Train(bytes.NewReader(corpus.Bytes())); err != nil {
		return nil, fmt.Errorf("training word2vec model: %w", err)
	}

	var out bytes.Buffer
	if err := model.Save(&out, vector.Single); err != nil {
		return nil, fmt.Errorf("exporting word vectors: %w", err)
	}
	vectors, err := readVectors(&out, cfg.Dim)
	if err != nil {
		return nil, err
	}
	return NewEmbeddings(cfg.Dim, vectors), nil
}

// readVectors parses the "word v1 v2 ..." text format.
func readVectors(r io.Reader, dim int) (map[string][]float64, error) {
	vectors := make(map[string][]float64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != dim+1 {
			// header line or malformed entry
			continue
		}
		vec := make([]float64, dim)
		for i, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing vector for %q: %w", fields[0], err)
			}
			vec[i] = val
		}
		vectors[fields[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word vectors: %w", err)
	}
	return vectors, nil
}

// Dim returns the vector dimension.
func (e *Embeddings) Dim() int {
	return e.dim
}

// Len returns the vocabulary size.
func (e *Embeddings) Len() int {
	return len(e.vectors)
}

// Vector returns the vector of word.
func (e *Embeddings) Vector(word string) ([]float64, bool) {
	vec, found := e.vectors[word]
	return vec, found
}

// EmbedSentence averages the vectors of the in-vocabulary tokens. A sentence
// with no known token maps to the zero vector.
func (e *Embeddings) EmbedSentence(tokens []string) []float64 {
	sum := make([]float64, e.dim)
	known := 0
	for _, token := range tokens {
		if vec, found := e.vectors[token]; found {
			floats.Add(sum, vec)
			known++
		}
	}
	if known > 0 {
		floats.Scale(1/float64(known), sum)
	}
	return sum
}

// EmbedAll embeds every sentence; rows are parallel to tokens.
func (e *Embeddings) EmbedAll(tokens [][]string) [][]float64 {
	out := make([][]float64, len(tokens))
	for i, seq := range tokens {
		out[i] = e.EmbedSentence(seq)
	}
	return out
}
