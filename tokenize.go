package sentimental

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

type TokenTester func(string) bool

type Tokenizer interface {
	Tokenize(string) []*Token
}

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided suffixes.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// NewIterTokenizer builds the treebank-style word splitter.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.contractions = contractions
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func addToken(s string, toks []*Token) []*Token {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, &Token{Text: s})
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	return t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *iterTokenizer) doSplit(token string) []*Token {
	tokens := []*Token{}
	suffs := []*Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			tokens = addToken(token, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// $100 -> [$, 100]
			tokens = addToken(string(token[0]), tokens)
			token = token[1:]
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > -1 {
			// don't -> [do, n't]
			tokens = addToken(token[:idx], tokens)
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// great!? -> [great, !, ?]
			suffs = append([]*Token{{Text: string(token[len(token)-1])}}, suffs...)
			token = token[:len(token)-1]
		} else {
			tokens = addToken(token, tokens)
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits a sentence into a slice of words.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token

	cache := map[string][]*Token{}
	for _, span := range strings.Fields(t.sanitizer.Replace(text)) {
		toks, found := cache[span]
		if !found {
			toks = t.doSplit(span)
			cache[span] = toks
		}
		for _, tok := range toks {
			tokens = append(tokens, &Token{Text: tok.Text})
		}
	}

	return tokens
}

// WordTokenizer segments text into sentences with the punkt English model and
// then splits every sentence into words.
//
// It accepts raw text as well as cleaned text; the prefix, contraction and
// quote handling only matters for the former.
type WordTokenizer struct {
	segmenter *sentences.DefaultSentenceTokenizer
	words     Tokenizer
}

// NewWordTokenizer loads the punkt model and wraps an iterTokenizer built from opts.
func NewWordTokenizer(opts ...TokenizerOptFunc) (*WordTokenizer, error) {
	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading sentence model: %w", err)
	}
	return &WordTokenizer{
		segmenter: segmenter,
		words:     NewIterTokenizer(opts...),
	}, nil
}

// Sentences returns the sentences of text.
func (w *WordTokenizer) Sentences(text string) []Sentence {
	var out []Sentence
	for _, s := range w.segmenter.Tokenize(text) {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, Sentence{Text: s.Text, Start: s.Start, End: s.End})
	}
	return out
}

// Words returns the word tokens of text in order.
func (w *WordTokenizer) Words(text string) []string {
	var words []string
	for _, sent := range w.Sentences(text) {
		for _, tok := range w.words.Tokenize(sent.Text) {
			words = append(words, tok.Text)
		}
	}
	return words
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyIndex(s string, suffixes []string) int {
	n := len(s)
	for _, suffix := range suffixes {
		idx := strings.Index(s, suffix)
		if idx >= 0 && n > len(suffix) {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
