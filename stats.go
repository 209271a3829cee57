package worddiff

// Statistics holds word counts for a diff.
type Statistics struct {
	OldWords      int // total words in old text
	NewWords      int // total words in new text
	CommonWords   int // words in Same chunks
	DeletedWords  int // old words outside Same chunks
	InsertedWords int // new words outside Same chunks
}

// Statistics calculates word counts for the result. Words of a Changed
// chunk count as both deleted and inserted.
func (r Result) Statistics() Statistics {
	var st Statistics
	for _, c := range r.Chunks {
		st.OldWords += len(c.Old)
		st.NewWords += len(c.New)
		if c.IsSame() {
			st.CommonWords += len(c.Old)
			continue
		}
		st.DeletedWords += len(c.Old)
		st.InsertedWords += len(c.New)
	}
	return st
}

// HasChanges returns true if any chunk is not Same.
func (r Result) HasChanges() bool {
	for _, c := range r.Chunks {
		if !c.IsSame() {
			return true
		}
	}
	return false
}

// Similarity returns the share of words the two texts have in common, from
// 0.0 (nothing shared) to 1.0 (identical). The count of common words is
// divided by the word count of the longer text.
func Similarity(oldText, newText string, opts Options) float64 {
	if oldText == newText {
		return 1.0
	}
	if oldText == "" || newText == "" {
		return 0.0
	}

	st := DiffStrings(oldText, newText, opts).Statistics()
	total := max(st.OldWords, st.NewWords)
	if total == 0 {
		return 0.0
	}
	return float64(st.CommonWords) / float64(total)
}
