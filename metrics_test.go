package sentimental

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(values ...string) []Label {
	out := make([]Label, len(values))
	for i, v := range values {
		out[i] = Label(v)
	}
	return out
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		yTrue    []Label
		yPred    []Label
		expected float64
		wantErr  error
	}{
		{"all correct", labels("a", "b"), labels("a", "b"), 1, nil},
		{"half", labels("a", "b", "a", "b"), labels("a", "a", "b", "b"), 0.5, nil},
		{"none", labels("a"), labels("b"), 0, nil},
		{"length mismatch", labels("a"), labels("a", "b"), 0, ErrShapeMismatch},
		{"empty", nil, nil, 0, ErrEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestClassificationReport(t *testing.T) {
	req := require.New(t)

	yTrue := labels("pos", "pos", "pos", "neg", "neg")
	yPred := labels("pos", "pos", "neg", "neg", "pos")

	report, err := NewClassificationReport(yTrue, yPred)
	req.NoError(err)
	req.Equal(5, report.Total)
	req.InDelta(0.6, report.Accuracy, 1e-12)
	req.Len(report.Classes, 2)

	neg := report.Classes[0]
	req.Equal("neg", neg.Label)
	req.InDelta(0.5, neg.Precision, 1e-12)
	req.InDelta(0.5, neg.Recall, 1e-12)
	req.InDelta(0.5, neg.F1, 1e-12)
	req.Equal(2, neg.Support)

	pos := report.Classes[1]
	req.Equal("pos", pos.Label)
	req.InDelta(2.0/3.0, pos.Precision, 1e-12)
	req.InDelta(2.0/3.0, pos.Recall, 1e-12)
	req.Equal(3, pos.Support)

	req.InDelta((0.5+2.0/3.0)/2, report.MacroAvg.Precision, 1e-12)
	req.InDelta(0.4*0.5+0.6*2.0/3.0, report.WeightedAvg.Recall, 1e-12)
	req.Equal(5, report.WeightedAvg.Support)
}

func TestClassificationReportZeroDivision(t *testing.T) {
	// "neg" is never predicted and "neutral" never occurs in the truth
	report, err := NewClassificationReport(labels("neg", "pos"), labels("neutral", "pos"))
	require.NoError(t, err)
	require.Len(t, report.Classes, 3)

	byLabel := make(map[string]ClassMetrics)
	for _, m := range report.Classes {
		byLabel[m.Label] = m
	}

	assert.Zero(t, byLabel["neg"].Precision)
	assert.Zero(t, byLabel["neg"].F1)
	assert.Zero(t, byLabel["neutral"].Recall)
	assert.Zero(t, byLabel["neutral"].Support)
	assert.InDelta(t, 1.0, byLabel["pos"].F1, 1e-12)
}

func TestTrainingMetricsPrint(t *testing.T) {
	report, err := NewClassificationReport(labels("neg", "pos", "pos"), labels("neg", "pos", "neg"))
	require.NoError(t, err)

	var buf bytes.Buffer
	TrainingMetrics{Accuracy: report.Accuracy, Report: report}.Print(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Accuracy: 0.6667\n\nClassification Report:\n"), out)
	for _, want := range []string{"precision", "recall", "f1-score", "support", "accuracy", "macro avg", "weighted avg", "0.67"} {
		assert.Contains(t, out, want)
	}
}
