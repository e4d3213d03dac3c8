package sentimental

import "errors"

var (
	ErrNotTrained        = errors.New("sentiment analyzer has not been trained")
	ErrNotFitted         = errors.New("vectorizer has not been fitted")
	ErrAlreadyFitted     = errors.New("already fitted")
	ErrShapeMismatch     = errors.New("feature rows and labels differ in length")
	ErrEmptyVocabulary   = errors.New("empty vocabulary; documents contain no terms")
	ErrSingleClass       = errors.New("training labels contain a single class")
	ErrMissingColumn     = errors.New("dataset is missing a required column")
	ErrMalformedRow      = errors.New("dataset row has too few fields")
	ErrEmptyDataset      = errors.New("dataset is empty")
	ErrDatasetTooSmall   = errors.New("dataset too small to split into train and test sets")
	ErrNotTabular        = errors.New("dataset is not a text file")
	ErrUnknownLemmatizer = errors.New("unknown lemmatizer")
)
