package sentimental

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// ClassMetrics holds precision, recall and F1 for one label or an average.
type ClassMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport summarizes predictions against the truth.
type ClassificationReport struct {
	Classes     []ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Total       int
}

// Accuracy returns the fraction of matching labels.
func Accuracy(yTrue, yPred []Label) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%w: %d true, %d predicted", ErrShapeMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, ErrEmptyDataset
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// NewClassificationReport computes per-class metrics over the union of labels
// seen in yTrue and yPred. Undefined ratios are reported as 0.
func NewClassificationReport(yTrue, yPred []Label) (ClassificationReport, error) {
	accuracy, err := Accuracy(yTrue, yPred)
	if err != nil {
		return ClassificationReport{}, err
	}

	labels := lo.Uniq(append(append([]Label(nil), yTrue...), yPred...))
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	report := ClassificationReport{
		Accuracy:    accuracy,
		Total:       len(yTrue),
		MacroAvg:    ClassMetrics{Label: "macro avg", Support: len(yTrue)},
		WeightedAvg: ClassMetrics{Label: "weighted avg", Support: len(yTrue)},
	}

	for _, label := range labels {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yTrue[i] == label && yPred[i] == label:
				tp++
			case yTrue[i] != label && yPred[i] == label:
				fp++
			case yTrue[i] == label && yPred[i] != label:
				fn++
			}
		}

		precision := ratio(tp, tp+fp)
		recall := ratio(tp, tp+fn)
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		m := ClassMetrics{
			Label:     string(label),
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   tp + fn,
		}
		report.Classes = append(report.Classes, m)

		weight := float64(m.Support) / float64(len(yTrue))
		report.MacroAvg.Precision += precision / float64(len(labels))
		report.MacroAvg.Recall += recall / float64(len(labels))
		report.MacroAvg.F1 += f1 / float64(len(labels))
		report.WeightedAvg.Precision += precision * weight
		report.WeightedAvg.Recall += recall * weight
		report.WeightedAvg.F1 += f1 * weight
	}

	return report, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Render writes the report as a table.
func (r ClassificationReport) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "precision", "recall", "f1-score", "support"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, m := range r.Classes {
		table.Append(metricsRow(m))
	}
	table.Append([]string{"", "", "", "", ""})
	table.Append([]string{"accuracy", "", "", fmt.Sprintf("%.2f", r.Accuracy), strconv.Itoa(r.Total)})
	table.Append(metricsRow(r.MacroAvg))
	table.Append(metricsRow(r.WeightedAvg))

	table.Render()
}

func metricsRow(m ClassMetrics) []string {
	return []string{
		m.Label,
		fmt.Sprintf("%.2f", m.Precision),
		fmt.Sprintf("%.2f", m.Recall),
		fmt.Sprintf("%.2f", m.F1),
		strconv.Itoa(m.Support),
	}
}
