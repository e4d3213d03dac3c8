package sentimental

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball"
)

// A Lemmatizer reduces a word to its base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Lemmatizer kinds accepted by NewLemmatizer.
const (
	DictionaryLemmatizer = "dictionary"
	SnowballLemmatizer   = "snowball"
)

// NewLemmatizer builds the lemmatizer registered under kind.
func NewLemmatizer(kind string) (Lemmatizer, error) {
	switch strings.ToLower(kind) {
	case "", DictionaryLemmatizer:
		return NewDictionaryLemmatizer()
	case SnowballLemmatizer:
		return NewSnowballStemmer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLemmatizer, kind)
	}
}

// dictionaryLemmatizer looks words up in the golem English dictionary.
type dictionaryLemmatizer struct {
	golem *golem.Lemmatizer
}

// NewDictionaryLemmatizer loads the English lemma dictionary.
func NewDictionaryLemmatizer() (Lemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemma dictionary: %w", err)
	}
	return &dictionaryLemmatizer{golem: lemmatizer}, nil
}

// Lemma returns the dictionary base form, or word itself when unknown.
func (d *dictionaryLemmatizer) Lemma(word string) string {
	if word == "" {
		return word
	}
	return d.golem.Lemma(word)
}

// snowballStemmer trades dictionary forms for coverage: every word gets
// stemmed, including ones missing from any dictionary.
type snowballStemmer struct {
	language string
}

// NewSnowballStemmer returns the English Snowball stemmer.
func NewSnowballStemmer() Lemmatizer {
	return snowballStemmer{language: "english"}
}

func (s snowballStemmer) Lemma(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
