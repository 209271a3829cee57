package worddiff

import "strings"

// Operation represents a diff operation type.
type Operation int

const (
	// Equal indicates the token is unchanged.
	Equal Operation = iota
	// Insert indicates the token was added.
	Insert
	// Delete indicates the token was removed.
	Delete
)

// String returns a human-readable representation of the operation.
func (o Operation) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Diff represents a single diff operation on a token.
type Diff struct {
	Type  Operation
	Token string
}

// Diffs flattens the result into one operation per word, in output order.
// A Changed chunk yields its old words as Delete followed by its new words
// as Insert.
func (r Result) Diffs() []Diff {
	var result []Diff
	for _, c := range r.Chunks {
		if c.IsSame() {
			for _, w := range c.New {
				result = append(result, Diff{Type: Equal, Token: w.Text})
			}
			continue
		}
		for _, w := range c.Old {
			result = append(result, Diff{Type: Delete, Token: w.Text})
		}
		for _, w := range c.New {
			result = append(result, Diff{Type: Insert, Token: w.Text})
		}
	}
	return result
}

// AggregateDiffs combines adjacent diffs of the same type into single
// tokens. Whitespace is part of the word stream, so tokens are joined
// without separators.
func AggregateDiffs(diffs []Diff) []Diff {
	if len(diffs) == 0 {
		return diffs
	}

	var result []Diff
	var currentType Operation = -1
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 && currentType >= 0 {
			result = append(result, Diff{Type: currentType, Token: current.String()})
			current.Reset()
		}
	}

	for _, d := range diffs {
		if d.Type != currentType {
			flush()
			currentType = d.Type
		}
		current.WriteString(d.Token)
	}
	flush()

	return result
}
