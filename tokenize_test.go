package sentimental

import (
	"testing"
)

func tokensToText(tokens []*Token) []string {
	text := make([]string, len(tokens))
	for i, tok := range tokens {
		text[i] = tok.Text
	}
	return text
}

func TestIterTokenizer(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"great!", []string{"great", "!"}},
		{"really?!", []string{"really", "?", "!"}},
		{"i don't know", []string{"i", "do", "n't", "know"}},
		{"we're here", []string{"we", "'re", "here"}},
		{"(yes)", []string{"(", "yes", ")"}},
		{"!", []string{"!"}},
		{"   ", nil},
	}

	tokenizer := NewIterTokenizer()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := tokensToText(tokenizer.Tokenize(tt.input))
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, expected %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizerOptions(t *testing.T) {
	tokenizer := NewIterTokenizer(
		UsingSuffixes([]string{"!"}),
		UsingIsUnsplittable(func(s string) bool { return s == "wow!" }),
	)

	got := tokensToText(tokenizer.Tokenize("wow! great! ok?"))
	expected := []string{"wow!", "great", "!", "ok?"}
	if len(got) != len(expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestWordTokenizer(t *testing.T) {
	words, err := NewWordTokenizer()
	if err != nil {
		t.Fatalf("NewWordTokenizer() error = %v", err)
	}

	sents := words.Sentences("I love this film. It is great! Do you agree?")
	if len(sents) != 3 {
		t.Errorf("expected 3 sentences, got %d: %v", len(sents), sents)
	}

	got := words.Words("i love this film. it is great!")
	expected := []string{"i", "love", "this", "film", ".", "it", "is", "great", "!"}
	if len(got) != len(expected) {
		t.Fatalf("Words() = %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("word %d = %q, expected %q", i, got[i], expected[i])
		}
	}

	if got := words.Words(""); len(got) != 0 {
		t.Errorf("expected no words for empty text, got %v", got)
	}
}

func TestWordTokenizerRawText(t *testing.T) {
	words, err := NewWordTokenizer()
	if err != nil {
		t.Fatalf("NewWordTokenizer() error = %v", err)
	}

	got := words.Words("We don’t pay $5 (really).")
	expected := []string{"We", "do", "n't", "pay", "$", "5", "(", "really", ")", "."}
	if len(got) != len(expected) {
		t.Fatalf("Words() = %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("word %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func BenchmarkWordTokenizer(b *testing.B) {
	words, err := NewWordTokenizer()
	if err != nil {
		b.Fatal(err)
	}
	text := "i absolutely loved this movie! the acting was great and the story kept me hooked. would watch again?"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		words.Words(text)
	}
}
