package sentimental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SentimentAnalyzer trains a TF-IDF + RBF SVC pipeline and predicts the label
// of single sentences with the same fitted vectorizer and classifier.
type SentimentAnalyzer struct {
	id     uuid.UUID
	logger *slog.Logger
	config TrainingConfig

	normalizer *Normalizer
	lemmatizer Lemmatizer
	vectorizer *TfidfVectorizer
	classifier *SVC
	detector   *LanguageDetector

	embeddings         *Embeddings
	sentenceEmbeddings [][]float64
}

type AnalyzerOpt func(*SentimentAnalyzer)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger *slog.Logger) AnalyzerOpt {
	return func(sa *SentimentAnalyzer) {
		sa.logger = logger
	}
}

// WithTrainingConfig replaces DefaultTrainingConfig.
func WithTrainingConfig(config TrainingConfig) AnalyzerOpt {
	return func(sa *SentimentAnalyzer) {
		sa.config = config
	}
}

// WithLemmatizer sets the lemmatizer of the default normalizer.
func WithLemmatizer(l Lemmatizer) AnalyzerOpt {
	return func(sa *SentimentAnalyzer) {
		sa.lemmatizer = l
	}
}

// WithNormalizer replaces the normalizer entirely.
func WithNormalizer(n *Normalizer) AnalyzerOpt {
	return func(sa *SentimentAnalyzer) {
		sa.normalizer = n
	}
}

// NewSentimentAnalyzer creates an untrained analyzer.
func NewSentimentAnalyzer(opts ...AnalyzerOpt) (*SentimentAnalyzer, error) {
	sa := &SentimentAnalyzer{
		id:       uuid.New(),
		config:   DefaultTrainingConfig(),
		detector: NewLanguageDetector(English),
	}
	for _, applyOpt := range opts {
		applyOpt(sa)
	}

	if err := sa.config.Validate(); err != nil {
		return nil, err
	}
	if sa.logger == nil {
		sa.logger = slog.New(slog.DiscardHandler)
	}
	sa.logger = sa.logger.With("analyzer", sa.id.String())

	if sa.normalizer == nil {
		var normOpts []NormalizerOpt
		if sa.lemmatizer != nil {
			normOpts = append(normOpts, UsingLemmatizer(sa.lemmatizer))
		}
		normalizer, err := NewNormalizer(normOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading normalizer: %w", err)
		}
		sa.normalizer = normalizer
	}

	sa.vectorizer = NewTfidfVectorizer(sa.config.MaxFeatures)
	sa.classifier = NewSVC(sa.config.C)
	return sa, nil
}

// ID returns the run id attached to every log record of the analyzer.
func (sa *SentimentAnalyzer) ID() uuid.UUID {
	return sa.id
}

// Preprocess normalizes texts.
func (sa *SentimentAnalyzer) Preprocess(texts []string) Corpus {
	return sa.normalizer.Normalize(texts)
}

// ExtractFeatures fits the vectorizer on corpus and returns its TF-IDF matrix
// along with the sentence embeddings.
func (sa *SentimentAnalyzer) ExtractFeatures(corpus Corpus) (SparseMatrix, [][]float64, error) {
	x, err := sa.vectorizer.FitTransform(corpus.Sentences)
	if err != nil {
		return SparseMatrix{}, nil, fmt.Errorf("fitting tfidf: %w", err)
	}
	sa.logger.Debug("TF-IDF fitted", "documents", corpus.Len(), "vocabulary", x.Cols)

	if sa.config.SkipEmbeddings {
		return x, nil, nil
	}
	embeddings, err := TrainEmbeddings(corpus.Tokens, sa.config.Embedding)
	if err != nil {
		return SparseMatrix{}, nil, err
	}
	sa.embeddings = embeddings
	sa.sentenceEmbeddings = embeddings.EmbedAll(corpus.Tokens)
	sa.logger.Debug("Word embeddings trained", "words", embeddings.Len(), "dim", embeddings.Dim())

	return x, sa.sentenceEmbeddings, nil
}

// Train fits the pipeline on examples, evaluates it on a held-out split and
// retains the classifier. An analyzer can only be trained once.
func (sa *SentimentAnalyzer) Train(ctx context.Context, examples []Example) (TrainingMetrics, error) {
	startTime := time.Now()

	if sa.vectorizer.Fitted() || sa.classifier.Fitted() {
		return TrainingMetrics{}, ErrAlreadyFitted
	}
	if len(examples) == 0 {
		return TrainingMetrics{}, ErrEmptyDataset
	}

	texts := lo.Map(examples, func(e Example, _ int) string { return e.Text })
	labels := lo.Map(examples, func(e Example, _ int) Label { return e.Label })

	corpus := sa.Preprocess(texts)
	sa.config.progress(StagePreprocess, startTime)
	if err := ctx.Err(); err != nil {
		return TrainingMetrics{}, err
	}

	x, _, err := sa.ExtractFeatures(corpus)
	if err != nil {
		return TrainingMetrics{}, err
	}
	sa.config.progress(StageTfidf, startTime)
	if !sa.config.SkipEmbeddings {
		sa.config.progress(StageEmbedding, startTime)
	}
	if err := ctx.Err(); err != nil {
		return TrainingMetrics{}, err
	}

	if len(x.Rows) != len(labels) {
		return TrainingMetrics{}, fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(x.Rows), len(labels))
	}
	trainIdx, testIdx, err := TrainTestSplit(len(labels), sa.config.TestSize, sa.config.Seed)
	if err != nil {
		return TrainingMetrics{}, err
	}
	sa.config.progress(StageSplit, startTime)
	sa.logger.Info("Dataset split", "train", len(trainIdx), "test", len(testIdx))

	yTrain := pick(labels, trainIdx)
	yTest := pick(labels, testIdx)

	if err := sa.classifier.Fit(x.Select(trainIdx), yTrain); err != nil {
		return TrainingMetrics{}, fmt.Errorf("fitting classifier: %w", err)
	}
	sa.config.progress(StageFit, startTime)
	sa.logger.Debug("Classifier fitted", "classes", len(sa.classifier.Classes()), "gamma", sa.classifier.Gamma())
	if err := ctx.Err(); err != nil {
		return TrainingMetrics{}, err
	}

	yPred, err := sa.classifier.Predict(x.Select(testIdx))
	if err != nil {
		return TrainingMetrics{}, err
	}
	report, err := NewClassificationReport(yTest, yPred)
	if err != nil {
		return TrainingMetrics{}, err
	}
	sa.config.progress(StageEvaluate, startTime)

	metrics := TrainingMetrics{
		Accuracy:       report.Accuracy,
		Report:         report,
		TrainSize:      len(trainIdx),
		TestSize:       len(testIdx),
		VocabularySize: x.Cols,
		Gamma:          sa.classifier.Gamma(),
		TrainingTime:   time.Since(startTime),
	}
	sa.logger.Info("Training complete",
		"accuracy", metrics.Accuracy,
		"duration", metrics.TrainingTime)

	return metrics, nil
}

// PredictSentiment returns the label of one sentence. The vectorizer is never
// refitted here.
func (sa *SentimentAnalyzer) PredictSentiment(sentence string) (Label, error) {
	if !sa.Trained() {
		return "", ErrNotTrained
	}

	if lang, foreign := sa.detector.IsForeign(sentence); foreign {
		sa.logger.Warn("Query does not look like English, non-ASCII letters are dropped",
			"language", lang)
	}

	corpus := sa.Preprocess([]string{sentence})
	x, err := sa.vectorizer.Transform(corpus.Sentences)
	if err != nil {
		return "", err
	}
	label, err := sa.classifier.PredictOne(x.Rows[0])
	if err != nil {
		return "", err
	}
	sa.logger.Debug("Predicted", "processed", corpus.Sentences[0], "label", label)
	return label, nil
}

// Trained reports whether the classifier is ready for prediction.
func (sa *SentimentAnalyzer) Trained() bool {
	return sa.classifier.Fitted()
}

// Vectorizer returns the TF-IDF vectorizer.
func (sa *SentimentAnalyzer) Vectorizer() *TfidfVectorizer {
	return sa.vectorizer
}

// Embeddings returns the word vectors trained alongside the classifier, or nil.
func (sa *SentimentAnalyzer) Embeddings() *Embeddings {
	return sa.embeddings
}

// SentenceEmbeddings returns one mean vector per training example, or nil.
func (sa *SentimentAnalyzer) SentenceEmbeddings() [][]float64 {
	return sa.sentenceEmbeddings
}

func pick[T any](values []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
