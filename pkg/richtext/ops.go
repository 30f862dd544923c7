package richtext

import (
	"fmt"
	"strings"
)

// Op is one unit of a rich-text document: inserted text plus the formatting
// marks active for that run. An empty-insert op, or a "\n" op carrying a block
// mark, acts as a line terminator for the preceding text run.
type Op struct {
	Insert string
	Marks  []Mark
}

// Ops is an ordered sequence of ops representing one editable document.
type Ops []Op

// WithMark returns a copy of op with m prepended to its mark list. Outer marks
// sit before inner ones, so a parser walking nested inline nodes prepends as
// it unwinds.
func (o Op) WithMark(m Mark) Op {
	marks := make([]Mark, 0, len(o.Marks)+1)
	marks = append(marks, m)
	marks = append(marks, o.Marks...)
	return Op{Insert: o.Insert, Marks: marks}
}

// BlockMark returns the op's block-level mark, if it carries one.
func (o Op) BlockMark() (Mark, bool) {
	for _, m := range o.Marks {
		if m.IsBlock() {
			return m, true
		}
	}
	return Mark{}, false
}

// HasMark reports whether the op carries a mark of the given kind.
func (o Op) HasMark(kind MarkKind) bool {
	for _, m := range o.Marks {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Validate checks that the op carries at most one block mark and that every
// mark payload is well formed. Conflicting list/header marks on a single op
// are unrepresentable downstream and rejected here.
func (o Op) Validate() error {
	blocks := 0
	for _, m := range o.Marks {
		if err := m.Validate(); err != nil {
			return err
		}
		if m.IsBlock() {
			blocks++
		}
	}
	if blocks > 1 {
		return fmt.Errorf("op %q carries %d block marks, want at most 1", o.Insert, blocks)
	}
	return nil
}

// PlainText concatenates inserted text across all ops, ignoring marks.
func (ops Ops) PlainText() string {
	var b strings.Builder
	for _, o := range ops {
		b.WriteString(o.Insert)
	}
	return b.String()
}

// Validate checks every op in the sequence.
func (ops Ops) Validate() error {
	for i, o := range ops {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

// Normalize returns the canonical form of the sequence: inline text runs are
// split at internal newline boundaries, adjacent runs with identical mark sets
// are merged, and empty inline ops are dropped. Block-terminator ops are kept
// as-is. Two sequences that render to the same document normalize to the same
// form, which is what round-trip comparisons should use.
func (ops Ops) Normalize() Ops {
	var out Ops
	for _, o := range ops {
		if _, ok := o.BlockMark(); ok {
			out = append(out, o)
			continue
		}
		if o.Insert == "" {
			continue
		}
		for _, piece := range splitKeepNewlines(o.Insert) {
			if piece == "\n" && len(o.Marks) == 0 {
				out = append(out, Op{Insert: "\n"})
				continue
			}
			out = appendMerged(out, Op{Insert: piece, Marks: o.Marks})
		}
	}
	return out
}

// appendMerged appends op to out, merging it into the previous op when both
// are inline runs with the same mark set and neither ends a line.
func appendMerged(out Ops, op Op) Ops {
	if n := len(out); n > 0 {
		prev := out[n-1]
		_, prevBlock := prev.BlockMark()
		if !prevBlock && !strings.HasSuffix(prev.Insert, "\n") &&
			!strings.HasSuffix(op.Insert, "\n") && MarksEqual(prev.Marks, op.Marks) {
			out[n-1].Insert = prev.Insert + op.Insert
			return out
		}
	}
	return append(out, op)
}

// splitKeepNewlines splits "a\nb" into ["a", "\n", "b"], keeping each newline
// as its own piece.
func splitKeepNewlines(s string) []string {
	var pieces []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			if s != "" {
				pieces = append(pieces, s)
			}
			return pieces
		}
		if i > 0 {
			pieces = append(pieces, s[:i])
		}
		pieces = append(pieces, "\n")
		s = s[i+1:]
	}
}

// Equal compares two sequences structurally: same text runs in the same order
// with order-independent mark sets. Callers comparing editor round-trips
// should normalize both sides first.
func (ops Ops) Equal(other Ops) bool {
	if len(ops) != len(other) {
		return false
	}
	for i := range ops {
		if ops[i].Insert != other[i].Insert {
			return false
		}
		if !MarksEqual(ops[i].Marks, other[i].Marks) {
			return false
		}
	}
	return true
}
