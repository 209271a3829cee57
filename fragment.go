package worddiff

// Fragment is a contiguous run of words [Offset, Offset+Size) within a
// word sequence.
type Fragment struct {
	Offset int
	Size   int
}

// End returns the offset just past the fragment.
func (f Fragment) End() int {
	return f.Offset + f.Size
}

// Words returns the words of ws covered by the fragment.
func (f Fragment) Words(ws []Word) []Word {
	return ws[f.Offset:f.End()]
}

// Fragments enumerates every fragment of a sequence of n words, largest
// first. Within one size, fragments are produced left to right:
//
//	n=3: (0,3) (0,2) (1,2) (0,1) (1,1) (2,1)
//
// A Fragments value is single use; create a new one to start over.
type Fragments struct {
	n      int
	size   int
	offset int
}

// NewFragments returns an enumerator over the fragments of n words.
func NewFragments(n int) *Fragments {
	if n < 0 {
		n = 0
	}
	return &Fragments{n: n, size: n}
}

// Next returns the next fragment. The second result is false once all
// n(n+1)/2 fragments have been produced.
func (f *Fragments) Next() (Fragment, bool) {
	if f.size <= 0 {
		return Fragment{}, false
	}
	frag := Fragment{Offset: f.offset, Size: f.size}
	f.offset++
	if f.offset+f.size > f.n {
		f.size--
		f.offset = 0
	}
	return frag, true
}

// FragmentCount returns the number of fragments of n words.
func FragmentCount(n int) int {
	if n <= 0 {
		return 0
	}
	return n * (n + 1) / 2
}

// EqualWords reports whether a and b hold the same word texts in the same
// order. Offsets are ignored.
func EqualWords(a, b []Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
