package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatasetPath      string `env:"DATASET_PATH,default=./temp.csv" validate:"required"`
	LogLevel         string `env:"LOG_LEVEL,default=WARN"`
	EmbeddingWorkers int    `env:"EMBEDDING_WORKERS,default=4" validate:"gt=0"`
	Lemmatizer       string `env:"LEMMATIZER,default=dictionary" validate:"oneof=dictionary snowball"`
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
