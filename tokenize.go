package worddiff

import (
	"strings"
	"unicode/utf8"
)

// Word is a non-empty slice of the source text. Text shares memory with
// the source; no copy is made during tokenization.
type Word struct {
	Text  string   // the word's characters
	Start int      // byte offset of the word in the source
	Type  CharType // class of the word's characters
}

// End returns the byte offset just past the word.
func (w Word) End() int {
	return w.Start + len(w.Text)
}

// Tokenizer splits a text into words one at a time.
//
// A character extends the current word only if it has the same CharType
// as the word and that type is not Other. Runs of identifier characters and
// runs of whitespace therefore form single words, while every Other
// character is a word of its own: "World!!!" is ["World", "!", "!", "!"].
type Tokenizer struct {
	src        string
	pos        int
	classifier Classifier
}

// NewTokenizer returns a Tokenizer over text.
func NewTokenizer(text string, c Classifier) *Tokenizer {
	return &Tokenizer{src: text, classifier: c}
}

// Next returns the next word. The second result is false once the text
// is exhausted.
func (t *Tokenizer) Next() (Word, bool) {
	if t.pos >= len(t.src) {
		return Word{}, false
	}

	start := t.pos
	r, size := utf8.DecodeRuneInString(t.src[t.pos:])
	typ := t.classifier.Classify(r)
	t.pos += size

	if typ != Other {
		for t.pos < len(t.src) {
			r, size = utf8.DecodeRuneInString(t.src[t.pos:])
			if t.classifier.Classify(r) != typ {
				break
			}
			t.pos += size
		}
	}

	return Word{Text: t.src[start:t.pos], Start: start, Type: typ}, true
}

// Reset rewinds the tokenizer to the beginning of the text.
func (t *Tokenizer) Reset() {
	t.pos = 0
}

// Tokenize splits text into words using the classifier configured by opts.
// The empty string yields a nil slice.
func Tokenize(text string, opts Options) []Word {
	return TokenizeWithClassifier(text, opts.Classifier())
}

// TokenizeWithClassifier splits text into words using c.
func TokenizeWithClassifier(text string, c Classifier) []Word {
	var words []Word
	t := NewTokenizer(text, c)
	for {
		w, ok := t.Next()
		if !ok {
			return words
		}
		words = append(words, w)
	}
}

// Texts returns the text of each word.
func Texts(words []Word) []string {
	if len(words) == 0 {
		return nil
	}
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}

// Join concatenates the text of words. Joining the full output of a
// Tokenizer reproduces its source exactly.
func Join(words []Word) string {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(w.Text)
	}
	return sb.String()
}
