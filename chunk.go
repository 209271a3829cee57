package worddiff

import (
	"fmt"
	"strings"
)

// Kind classifies a Chunk.
type Kind int

const (
	// Same indicates both sides hold the same words.
	Same Kind = iota
	// Changed indicates both sides are non-empty and differ.
	Changed
	// Deleted indicates words present only on the old side.
	Deleted
	// Inserted indicates words present only on the new side.
	Inserted
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Same:
		return "Same"
	case Changed:
		return "Changed"
	case Deleted:
		return "Deleted"
	case Inserted:
		return "Inserted"
	default:
		return "Unknown"
	}
}

// Chunk is one aligned region of a comparison: the old words and the new
// words that occupy it. At least one side is non-empty.
type Chunk struct {
	Old []Word
	New []Word
}

// IsSame reports whether both sides hold the same word texts.
func (c Chunk) IsSame() bool {
	return EqualWords(c.Old, c.New)
}

// IsChanged reports whether both sides are non-empty and differ.
func (c Chunk) IsChanged() bool {
	return len(c.Old) > 0 && len(c.New) > 0 && !EqualWords(c.Old, c.New)
}

// IsDeleted reports whether the chunk holds only old words.
func (c Chunk) IsDeleted() bool {
	return len(c.Old) > 0 && len(c.New) == 0
}

// IsInserted reports whether the chunk holds only new words.
func (c Chunk) IsInserted() bool {
	return len(c.Old) == 0 && len(c.New) > 0
}

// Kind returns the chunk's classification.
func (c Chunk) Kind() Kind {
	switch {
	case c.IsDeleted():
		return Deleted
	case c.IsInserted():
		return Inserted
	case c.IsSame():
		return Same
	default:
		return Changed
	}
}

// OldText returns the old side as it appeared in the source.
func (c Chunk) OldText() string {
	return Join(c.Old)
}

// NewText returns the new side as it appeared in the source.
func (c Chunk) NewText() string {
	return Join(c.New)
}

// OldWords returns the texts of the old words.
func (c Chunk) OldWords() []string {
	return Texts(c.Old)
}

// NewWords returns the texts of the new words.
func (c Chunk) NewWords() []string {
	return Texts(c.New)
}

// String renders the chunk for debugging, e.g. Deleted["Wind"]->[].
func (c Chunk) String() string {
	return fmt.Sprintf("%s%q->%q", c.Kind(), c.OldWords(), c.NewWords())
}

// Result is the ordered list of chunks produced by a diff.
//
// Invariants:
//   - concat(Chunks.Old) == the old word sequence
//   - concat(Chunks.New) == the new word sequence
//   - no chunk has two empty sides
type Result struct {
	Chunks  []Chunk
	OldText string // set when the result was computed from text
	NewText string // set when the result was computed from text

	hasText bool
}

// Old returns the old word sequence reassembled from the chunks.
func (r Result) Old() []Word {
	var words []Word
	for _, c := range r.Chunks {
		words = append(words, c.Old...)
	}
	return words
}

// New returns the new word sequence reassembled from the chunks.
func (r Result) New() []Word {
	var words []Word
	for _, c := range r.Chunks {
		words = append(words, c.New...)
	}
	return words
}

// Validate checks the Result invariants and returns an error on the first
// violation. Word offsets and the reassembled texts are only checked for
// results computed from text.
func (r Result) Validate() error {
	var oldConcat, newConcat strings.Builder
	oldPos, newPos := 0, 0
	for ci, c := range r.Chunks {
		if len(c.Old) == 0 && len(c.New) == 0 {
			return fmt.Errorf("chunk[%d]: both sides are empty", ci)
		}
		for wi, w := range c.Old {
			if w.Text == "" {
				return fmt.Errorf("chunk[%d].old[%d]: empty word", ci, wi)
			}
			if r.hasText && w.Start != oldPos {
				return fmt.Errorf("chunk[%d].old[%d]: starts at %d, want %d", ci, wi, w.Start, oldPos)
			}
			oldPos += len(w.Text)
			oldConcat.WriteString(w.Text)
		}
		for wi, w := range c.New {
			if w.Text == "" {
				return fmt.Errorf("chunk[%d].new[%d]: empty word", ci, wi)
			}
			if r.hasText && w.Start != newPos {
				return fmt.Errorf("chunk[%d].new[%d]: starts at %d, want %d", ci, wi, w.Start, newPos)
			}
			newPos += len(w.Text)
			newConcat.WriteString(w.Text)
		}
	}

	if r.hasText && r.OldText != oldConcat.String() {
		return fmt.Errorf("result: chunks do not reconstruct OldText")
	}
	if r.hasText && r.NewText != newConcat.String() {
		return fmt.Errorf("result: chunks do not reconstruct NewText")
	}
	return nil
}
