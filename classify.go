package worddiff

import "unicode"

// DefaultIdentifierChars contains the punctuation characters that are
// treated as part of an identifier by default, so "a-b_c" is one word.
const DefaultIdentifierChars = "-_"

// CharType is the class of a single character. Word boundaries fall where
// the class changes, and around every Other character.
type CharType int

const (
	// Identifier covers letters, digits and the configured identifier chars.
	Identifier CharType = iota
	// Whitespace covers Unicode white space.
	Whitespace
	// Other covers punctuation, symbols and everything else.
	Other
)

// String returns a human-readable representation of the character type.
func (c CharType) String() string {
	switch c {
	case Identifier:
		return "Identifier"
	case Whitespace:
		return "Whitespace"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}

// Classifier maps runes to a CharType. The zero value classifies only
// letters and digits as identifier characters.
type Classifier struct {
	extra map[rune]bool
}

// NewClassifier returns a Classifier that treats every rune in
// identifierChars as an identifier character, in addition to letters
// and digits.
func NewClassifier(identifierChars string) Classifier {
	if identifierChars == "" {
		return Classifier{}
	}
	extra := make(map[rune]bool)
	for _, r := range identifierChars {
		extra[r] = true
	}
	return Classifier{extra: extra}
}

var defaultClassifier = NewClassifier(DefaultIdentifierChars)

// DefaultClassifier returns the Classifier used when no options are given.
func DefaultClassifier() Classifier {
	return defaultClassifier
}

// Classify returns the CharType of r. Alphabetic marks such as the Indic
// vowel signs and the circled letters count as letters.
func (c Classifier) Classify(r rune) CharType {
	switch {
	case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r) || c.extra[r]:
		return Identifier
	case unicode.IsSpace(r):
		return Whitespace
	default:
		return Other
	}
}

// Classify returns the CharType of r using the default classifier.
func Classify(r rune) CharType {
	return defaultClassifier.Classify(r)
}
