package sentimental

import (
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
)

// Training stages reported through TrainingConfig.ProgressCallback.
const (
	StagePreprocess = "preprocess"
	StageTfidf      = "tfidf"
	StageEmbedding  = "embedding"
	StageSplit      = "split"
	StageFit        = "fit"
	StageEvaluate   = "evaluate"
)

// TrainingConfig contains configuration for model training
type TrainingConfig struct {
	TestSize    float64 `validate:"gt=0,lt=1"`
	Seed        int64
	MaxFeatures int     `validate:"gte=0"`
	C           float64 `validate:"gt=0"`
	Embedding   EmbeddingConfig
	// SkipEmbeddings disables word2vec training. The classifier never reads
	// the embeddings, so this only drops the side product.
	SkipEmbeddings   bool
	ProgressCallback func(stage string, elapsed time.Duration)
}

// DefaultTrainingConfig returns a default training configuration
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		TestSize:    0.2,
		Seed:        42,
		MaxFeatures: DefaultMaxFeatures,
		C:           1.0,
		Embedding:   DefaultEmbeddingConfig(),
	}
}

// Validate checks the configuration bounds.
func (c TrainingConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid training config: %w", err)
	}
	return nil
}

func (c TrainingConfig) progress(stage string, start time.Time) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(stage, time.Since(start))
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	Accuracy       float64
	Report         ClassificationReport
	TrainSize      int
	TestSize       int
	VocabularySize int
	Gamma          float64
	TrainingTime   time.Duration
}

// Print writes the accuracy line followed by the classification report.
func (m TrainingMetrics) Print(w io.Writer) {
	fmt.Fprintf(w, "Accuracy: %.4f\n", m.Accuracy)
	fmt.Fprint(w, "\nClassification Report:\n")
	m.Report.Render(w)
}
