// Package worddiff provides word-level diffing of text.
//
// Text is split into words by character class: a run of identifier
// characters (letters, digits and, by default, '-' and '_') is one word, a
// run of white space is one word, and every other character, such as
// punctuation, is a word of its own. Whitespace words are kept, so the
// words of a text always concatenate back to the text itself.
//
// For example, comparing
//
//	Hello World
//	Hello World!
//
// yields a Same chunk for ["Hello", " ", "World"] followed by an Inserted
// chunk for ["!"].
//
// The diff is greedy rather than minimal: it finds the longest contiguous
// run of words common to both sides, emits it as a Same chunk and recurses
// on the words before and after it. When two sides share no word at all,
// the old side becomes a Deleted chunk and the new side an Inserted chunk.
//
// Performance: the worst case is O(n^4) word comparisons for n words, since
// each recursion step may try all n(n+1)/2 fragments of the shorter side
// against every position of the longer side. The package is meant for
// editor-sized inputs (a few thousand words), not whole-file diffing of
// large files. DiffStringsContext bounds the cost with a context.
package worddiff

import "context"

// Options configures tokenization and diff output.
type Options struct {
	// IdentifierChars is the set of punctuation characters treated as part
	// of identifier words. If empty, DefaultIdentifierChars is used unless
	// NoIdentifierChars is set.
	IdentifierChars string

	// NoIdentifierChars, when true, restricts identifier words to letters
	// and digits.
	NoIdentifierChars bool

	// MergeChanges, when true, merges each Deleted chunk that is directly
	// followed by an Inserted chunk into one Changed chunk.
	MergeChanges bool

	// ParallelThreshold is the minimum number of words, old and new
	// together, that both the part before a match and the part after it
	// must hold for the context variants to diff them concurrently.
	// 0 disables concurrency. The result does not depend on this setting.
	ParallelThreshold int
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{
		IdentifierChars: DefaultIdentifierChars,
	}
}

// Classifier returns the character classifier described by the options.
func (o Options) Classifier() Classifier {
	if o.NoIdentifierChars {
		return Classifier{}
	}
	if o.IdentifierChars == "" {
		return defaultClassifier
	}
	return NewClassifier(o.IdentifierChars)
}

// DiffWords compares two word sequences.
func DiffWords(old, new []Word, opts Options) Result {
	// Background is never cancelled and the sequential path starts no
	// goroutines, so no error can occur.
	chunks, _ := differ{}.diff(context.Background(), old, new)
	return newResult(chunks, opts)
}

// DiffWordsContext is like DiffWords but stops early with ctx.Err() when
// ctx is cancelled.
func DiffWordsContext(ctx context.Context, old, new []Word, opts Options) (Result, error) {
	d := differ{parallelThreshold: opts.ParallelThreshold}
	chunks, err := d.diff(ctx, old, new)
	if err != nil {
		return Result{}, err
	}
	return newResult(chunks, opts), nil
}

// DiffStrings tokenizes both texts and compares their words.
func DiffStrings(oldText, newText string, opts Options) Result {
	c := opts.Classifier()
	r := DiffWords(TokenizeWithClassifier(oldText, c), TokenizeWithClassifier(newText, c), opts)
	return r.withText(oldText, newText)
}

// DiffStringsContext is like DiffStrings but stops early with ctx.Err()
// when ctx is cancelled.
func DiffStringsContext(ctx context.Context, oldText, newText string, opts Options) (Result, error) {
	c := opts.Classifier()
	r, err := DiffWordsContext(ctx, TokenizeWithClassifier(oldText, c), TokenizeWithClassifier(newText, c), opts)
	if err != nil {
		return Result{}, err
	}
	return r.withText(oldText, newText), nil
}

func newResult(chunks []Chunk, opts Options) Result {
	if opts.MergeChanges {
		chunks = mergeChanges(chunks)
	}
	return Result{Chunks: chunks}
}

func (r Result) withText(oldText, newText string) Result {
	r.OldText = oldText
	r.NewText = newText
	r.hasText = true
	return r
}
