package sentimental

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	libSvm "github.com/ewalker544/libsvm-go"
	"github.com/samber/lo"
)

// SVC is a C-support vector classifier with an RBF kernel. It is fitted once
// and read-only afterwards.
type SVC struct {
	C float64

	gamma   float64
	classes []Label
	model   *libSvm.Model
}

// NewSVC returns an unfitted classifier with penalty c.
func NewSVC(c float64) *SVC {
	return &SVC{C: c}
}

// Fitted reports whether Fit has succeeded.
func (s *SVC) Fitted() bool {
	return s.model != nil
}

// Classes returns the known labels in index order.
func (s *SVC) Classes() []Label {
	return append([]Label(nil), s.classes...)
}

// Gamma returns the kernel coefficient chosen at fit time.
func (s *SVC) Gamma() float64 {
	return s.gamma
}

// Fit trains the classifier. Rows and labels must have the same length.
func (s *SVC) Fit(x SparseMatrix, y []Label) error {
	if s.Fitted() {
		return ErrAlreadyFitted
	}
	if len(x.Rows) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(x.Rows), len(y))
	}
	if len(y) == 0 {
		return ErrEmptyDataset
	}

	classes := lo.Uniq(y)
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	if len(classes) < 2 {
		return fmt.Errorf("%w: %q", ErrSingleClass, classes[0])
	}
	index := make(map[Label]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	targets := lo.Map(y, func(label Label, _ int) float64 {
		return float64(index[label])
	})

	problemFile, err := os.CreateTemp("", "sentimental-*.svm")
	if err != nil {
		return fmt.Errorf("creating svm problem file: %w", err)
	}
	defer os.Remove(problemFile.Name())

	if err := writeProblem(problemFile, x, targets); err != nil {
		problemFile.Close()
		return err
	}
	if err := problemFile.Close(); err != nil {
		return fmt.Errorf("closing svm problem file: %w", err)
	}

	param := libSvm.NewParameter()
	param.SvmType = libSvm.C_SVC
	param.KernelType = libSvm.RBF
	param.C = s.C
	param.Gamma = scaleGamma(x)
	param.QuietMode = true

	problem, err := libSvm.NewProblem(problemFile.Name(), param)
	if err != nil {
		return fmt.Errorf("loading svm problem: %w", err)
	}

	model := libSvm.NewModel(param)
	if err := model.Train(problem); err != nil {
		return fmt.Errorf("training svm: %w", err)
	}

	s.gamma = param.Gamma
	s.classes = classes
	s.model = model
	return nil
}

// PredictOne returns the label of a single row.
func (s *SVC) PredictOne(row SparseVector) (Label, error) {
	if !s.Fitted() {
		return "", ErrNotTrained
	}
	x := make(map[int]float64, row.Len())
	for i, idx := range row.Indices {
		// libsvm indices start at 1
		x[idx+1] = row.Values[i]
	}
	class := int(math.Round(s.model.Predict(x)))
	if class < 0 || class >= len(s.classes) {
		return "", fmt.Errorf("svm predicted unknown class index %d", class)
	}
	return s.classes[class], nil
}

// Predict returns one label per row of x.
func (s *SVC) Predict(x SparseMatrix) ([]Label, error) {
	labels := make([]Label, len(x.Rows))
	for i, row := range x.Rows {
		label, err := s.PredictOne(row)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

// scaleGamma computes 1 / (n_features * Var(X)) over the dense view of x,
// zeros included. A constant matrix yields 1.
func scaleGamma(x SparseMatrix) float64 {
	rows, cols := x.Dims()
	n := float64(rows * cols)
	if n == 0 {
		return 1
	}
	var sum, sumSq float64
	for _, row := range x.Rows {
		for _, val := range row.Values {
			sum += val
			sumSq += val * val
		}
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance <= 0 {
		return 1
	}
	return 1 / (float64(cols) * variance)
}

// writeProblem writes x and targets in the libsvm sparse text format.
func writeProblem(w io.Writer, x SparseMatrix, targets []float64) error {
	bw := bufio.NewWriter(w)
	for i, row := range x.Rows {
		bw.WriteString(strconv.FormatFloat(targets[i], 'g', -1, 64))
		for j, idx := range row.Indices {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx + 1))
			bw.WriteByte(':')
			bw.WriteString(strconv.FormatFloat(row.Values[j], 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing svm problem: %w", err)
	}
	return nil
}
