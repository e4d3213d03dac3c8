package sentimental

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/bbalet/stopwords"
	"github.com/samber/lo"
)

// negations are stop words that carry sentiment and are never dropped.
var negations = []string{"not", "no"}

// StopWords filters high-frequency words using the bbalet/stopwords lists.
type StopWords struct {
	language Language
	keep     map[string]bool
}

// NewStopWords returns a filter for lang. Words in keep survive even when the
// list contains them.
func NewStopWords(lang Language, keep ...string) *StopWords {
	sw := &StopWords{
		language: lang,
		keep:     make(map[string]bool, len(keep)),
	}
	for _, word := range keep {
		sw.keep[strings.ToLower(word)] = true
	}
	return sw
}

// NewEnglishStopWords returns the English filter with the negation exception.
func NewEnglishStopWords() *StopWords {
	return NewStopWords(English, negations...)
}

// IsStopWord reports whether word would be removed.
func (sw *StopWords) IsStopWord(word string) bool {
	if word == "" || sw.keep[word] || !isAlphabetic(word) {
		return false
	}
	// The library does not export its lists; a stop word cleans down to blanks.
	cleaned := stopwords.CleanString(word, string(sw.language), false)
	return strings.TrimSpace(cleaned) == ""
}

// Filter returns tokens without stop words, preserving order.
func (sw *StopWords) Filter(tokens []string) []string {
	return lo.Filter(tokens, func(token string, _ int) bool {
		return !sw.IsStopWord(token)
	})
}

func isAlphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// LanguageDetector reports the language of a piece of text.
type LanguageDetector struct {
	expected Language
}

// NewLanguageDetector creates a detector that flags text not written in expected.
func NewLanguageDetector(expected Language) *LanguageDetector {
	return &LanguageDetector{expected: expected}
}

// DetectLanguage returns the ISO 639-1 code of text and the detection confidence.
func (ld *LanguageDetector) DetectLanguage(text string) (Language, float64) {
	info := whatlanggo.Detect(text)
	return Language(info.Lang.Iso6391()), info.Confidence
}

// IsForeign reports whether text is reliably detected as another language.
func (ld *LanguageDetector) IsForeign(text string) (Language, bool) {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ld.expected, false
	}
	lang := Language(info.Lang.Iso6391())
	return lang, lang != "" && lang != ld.expected
}
