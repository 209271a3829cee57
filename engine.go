package worddiff

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// differ carries the per-call settings of one diff.
type differ struct {
	// parallelThreshold is the minimum number of words, old and new
	// together, that both halves around a match must hold before they are
	// diffed concurrently. Zero means always sequential.
	parallelThreshold int
}

// diff partitions old and new around their longest common fragment and
// recurses on what lies before and after it.
func (d differ) diff(ctx context.Context, old, new []Word) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(old) == 0 || len(new) == 0 {
		if len(old) == 0 && len(new) == 0 {
			return nil, nil
		}
		return []Chunk{newChunk(old, new)}, nil
	}

	oldMatch, newMatch, found, err := longestCommonFragment(ctx, old, new)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Chunk{newChunk(old, nil), newChunk(nil, new)}, nil
	}

	oldBefore, newBefore := old[:oldMatch.Offset], new[:newMatch.Offset]
	oldAfter, newAfter := old[oldMatch.End():], new[newMatch.End():]

	var before, after []Chunk
	if d.parallel(oldBefore, newBefore, oldAfter, newAfter) {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			before, err = d.diff(gctx, oldBefore, newBefore)
			return err
		})
		g.Go(func() error {
			var err error
			after, err = d.diff(gctx, oldAfter, newAfter)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		if before, err = d.diff(ctx, oldBefore, newBefore); err != nil {
			return nil, err
		}
		if after, err = d.diff(ctx, oldAfter, newAfter); err != nil {
			return nil, err
		}
	}

	chunks := make([]Chunk, 0, len(before)+1+len(after))
	chunks = append(chunks, before...)
	chunks = append(chunks, newChunk(oldMatch.Words(old), newMatch.Words(new)))
	chunks = append(chunks, after...)
	return chunks, nil
}

// parallel reports whether the halves around a match are large enough to
// be worth diffing concurrently.
func (d differ) parallel(oldBefore, newBefore, oldAfter, newAfter []Word) bool {
	if d.parallelThreshold <= 0 {
		return false
	}
	beforeSize := len(oldBefore) + len(newBefore)
	afterSize := len(oldAfter) + len(newAfter)
	return beforeSize >= d.parallelThreshold && afterSize >= d.parallelThreshold
}

// longestCommonFragment finds the longest run of words present in both old
// and new. The shorter sequence is the needle and is searched for in the
// longer one, the haystack; old is the needle when both have the same
// length. Ties between equally long runs go to the leftmost run of the
// needle, then to its leftmost position in the haystack.
//
// The context is checked once per fragment size.
func longestCommonFragment(ctx context.Context, old, new []Word) (oldMatch, newMatch Fragment, found bool, err error) {
	needle, haystack := old, new
	swapped := len(new) < len(old)
	if swapped {
		needle, haystack = new, old
	}

	frags := NewFragments(len(needle))
	size := len(needle)
	for {
		f, ok := frags.Next()
		if !ok {
			return Fragment{}, Fragment{}, false, nil
		}
		if f.Size != size {
			size = f.Size
			if err := ctx.Err(); err != nil {
				return Fragment{}, Fragment{}, false, err
			}
		}

		pos := indexWords(haystack, f.Words(needle))
		if pos < 0 {
			continue
		}
		if pos+f.Size > len(haystack) {
			panic(fmt.Sprintf("worddiff: match [%d,%d) exceeds haystack of %d words", pos, pos+f.Size, len(haystack)))
		}

		match := Fragment{Offset: pos, Size: f.Size}
		if swapped {
			return match, f, true, nil
		}
		return f, match, true, nil
	}
}

// indexWords returns the index of the first window of haystack whose words
// equal pattern, or -1.
func indexWords(haystack, pattern []Word) int {
	n := len(pattern)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i].Text != pattern[0].Text {
			continue
		}
		if EqualWords(haystack[i:i+n], pattern) {
			return i
		}
	}
	return -1
}

// newChunk builds a chunk, normalizing empty sides to nil.
func newChunk(old, new []Word) Chunk {
	if len(old) == 0 && len(new) == 0 {
		panic("worddiff: chunk with two empty sides")
	}
	if len(old) == 0 {
		old = nil
	}
	if len(new) == 0 {
		new = nil
	}
	return Chunk{Old: old, New: new}
}

// mergeChanges joins every deleted chunk that is directly followed by an
// inserted chunk into a single changed chunk.
func mergeChanges(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}

	merged := make([]Chunk, 0, len(chunks))
	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		if c.IsDeleted() && i+1 < len(chunks) && chunks[i+1].IsInserted() {
			merged = append(merged, Chunk{Old: c.Old, New: chunks[i+1].New})
			i++
			continue
		}
		merged = append(merged, c)
	}
	return merged
}
