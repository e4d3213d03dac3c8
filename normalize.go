package sentimental

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// cleanRE drops @mentions, URLs and every character outside letters,
// whitespace, '!' and '?'.
var cleanRE = regexp.MustCompile(`@\w+|http\S+|www.\S+|[^a-zA-Z\s!?]`)

// Normalizer turns raw text into lemmatized, stop-word free token sequences.
type Normalizer struct {
	words      *WordTokenizer
	stopWords  *StopWords
	lemmatizer Lemmatizer
}

type NormalizerOpt func(*Normalizer)

// UsingLemmatizer replaces the default dictionary lemmatizer.
func UsingLemmatizer(l Lemmatizer) NormalizerOpt {
	return func(n *Normalizer) {
		n.lemmatizer = l
	}
}

// UsingStopWords replaces the English stop-word filter.
func UsingStopWords(sw *StopWords) NormalizerOpt {
	return func(n *Normalizer) {
		n.stopWords = sw
	}
}

// UsingWordTokenizer replaces the punkt + treebank word tokenizer.
func UsingWordTokenizer(w *WordTokenizer) NormalizerOpt {
	return func(n *Normalizer) {
		n.words = w
	}
}

// NewNormalizer creates a Normalizer. Resources not supplied through opts are
// loaded with their English defaults.
func NewNormalizer(opts ...NormalizerOpt) (*Normalizer, error) {
	n := &Normalizer{}
	for _, applyOpt := range opts {
		applyOpt(n)
	}

	var err error
	if n.words == nil {
		if n.words, err = NewWordTokenizer(); err != nil {
			return nil, err
		}
	}
	if n.lemmatizer == nil {
		if n.lemmatizer, err = NewDictionaryLemmatizer(); err != nil {
			return nil, err
		}
	}
	if n.stopWords == nil {
		n.stopWords = NewEnglishStopWords()
	}

	return n, nil
}

// Clean strips mentions, URLs and disallowed characters and lowercases the rest.
func Clean(text string) string {
	return strings.ToLower(cleanRE.ReplaceAllString(text, ""))
}

// Tokens runs the full pipeline on one text and returns its tokens.
func (n *Normalizer) Tokens(text string) []string {
	words := n.stopWords.Filter(n.words.Words(Clean(text)))
	return lo.Map(words, func(word string, _ int) string {
		return n.lemma(word)
	})
}

// lemma keeps lemmatizer output inside the cleaned alphabet.
func (n *Normalizer) lemma(word string) string {
	lemma := Clean(n.lemmatizer.Lemma(word))
	if strings.TrimSpace(lemma) == "" || strings.ContainsAny(lemma, " \t\n\r") {
		return word
	}
	return lemma
}

// Normalize processes a batch. The result is parallel to texts.
func (n *Normalizer) Normalize(texts []string) Corpus {
	corpus := Corpus{
		Tokens:    make([][]string, len(texts)),
		Sentences: make([]string, len(texts)),
	}
	for i, text := range texts {
		tokens := n.Tokens(text)
		corpus.Tokens[i] = tokens
		corpus.Sentences[i] = strings.Join(tokens, " ")
	}
	return corpus
}

// NormalizeValues coerces arbitrary values to strings before normalizing them.
func (n *Normalizer) NormalizeValues(values []any) Corpus {
	return n.Normalize(lo.Map(values, func(v any, _ int) string {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}))
}
