package sentimental

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text string // The token's actual content.
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Label is a sentiment class as it appears in the training data. The label set
// is not fixed in advance.
type Label string

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// Example is one labeled training row.
type Example struct {
	Text  string // Raw text
	Label Label  // The true sentiment label
}

// Corpus holds the two parallel views of a normalized batch of text.
type Corpus struct {
	Tokens    [][]string // Lemmatized tokens per input, fed to the embedding model
	Sentences []string   // Tokens rejoined with single spaces, fed to TF-IDF
}

// Len returns the number of documents in the corpus.
func (c Corpus) Len() int {
	return len(c.Sentences)
}

// Language represents supported languages
type Language string

const (
	English Language = "en"
)
