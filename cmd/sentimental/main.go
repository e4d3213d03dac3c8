package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/tsawler/sentimental"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run trains the classifier on the dataset, prints its evaluation and then
// answers queries from stdin.
func run() error {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	examples, err := sentimental.LoadCSV(config.DatasetPath)
	if err != nil {
		return err
	}
	log.Info("Dataset loaded", "path", config.DatasetPath, "examples", len(examples))

	lemmatizer, err := sentimental.NewLemmatizer(config.Lemmatizer)
	if err != nil {
		return err
	}

	trainingConfig := sentimental.DefaultTrainingConfig()
	trainingConfig.Embedding.Workers = config.EmbeddingWorkers
	trainingConfig.ProgressCallback = func(stage string, elapsed time.Duration) {
		log.Debug("Training stage done", "stage", stage, "elapsed", elapsed)
	}

	analyzer, err := sentimental.NewSentimentAnalyzer(
		sentimental.WithLogger(log),
		sentimental.WithLemmatizer(lemmatizer),
		sentimental.WithTrainingConfig(trainingConfig),
	)
	if err != nil {
		return err
	}

	metrics, err := analyzer.Train(ctx, examples)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	metrics.Print(os.Stdout)

	err = sentimental.RunInteractive(ctx, os.Stdin, os.Stdout, analyzer)
	if errors.Is(err, context.Canceled) {
		// interrupted at the prompt
		fmt.Println()
		return nil
	}
	return err
}
