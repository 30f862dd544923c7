package richtext

import "fmt"

// MarkKind identifies a single formatting attribute attachable to a text run.
type MarkKind int

const (
	MarkBold MarkKind = iota
	MarkItalic
	MarkStrike
	MarkUnderline
	MarkLink
	MarkHeader
	MarkOrderedItem
	MarkUnorderedItem
)

// String returns the attribute name used in delta JSON.
func (k MarkKind) String() string {
	switch k {
	case MarkBold:
		return "bold"
	case MarkItalic:
		return "italic"
	case MarkStrike:
		return "strike"
	case MarkUnderline:
		return "underline"
	case MarkLink:
		return "link"
	case MarkHeader:
		return "header"
	case MarkOrderedItem:
		return "list-ordered"
	case MarkUnorderedItem:
		return "list-bullet"
	default:
		return fmt.Sprintf("mark(%d)", int(k))
	}
}

// Mark is one formatting attribute. The kind is closed; URL is only meaningful
// for MarkLink and Level only for MarkHeader.
type Mark struct {
	Kind  MarkKind
	URL   string
	Level int
}

// Bold returns the bold inline mark.
func Bold() Mark { return Mark{Kind: MarkBold} }

// Italic returns the italic inline mark.
func Italic() Mark { return Mark{Kind: MarkItalic} }

// Strike returns the strikethrough inline mark.
func Strike() Mark { return Mark{Kind: MarkStrike} }

// Underline returns the underline inline mark.
func Underline() Mark { return Mark{Kind: MarkUnderline} }

// Link returns a link mark pointing at url.
func Link(url string) Mark { return Mark{Kind: MarkLink, URL: url} }

// Header returns a header mark for the given level, clamped to 1..6.
func Header(level int) Mark {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Mark{Kind: MarkHeader, Level: level}
}

// OrderedItem returns the ordered-list line terminator mark.
func OrderedItem() Mark { return Mark{Kind: MarkOrderedItem} }

// UnorderedItem returns the unordered-list line terminator mark.
func UnorderedItem() Mark { return Mark{Kind: MarkUnorderedItem} }

// IsBlock reports whether the mark terminates a line rather than styling
// inline text.
func (m Mark) IsBlock() bool {
	switch m.Kind {
	case MarkHeader, MarkOrderedItem, MarkUnorderedItem:
		return true
	}
	return false
}

// IsEmphasis reports whether the mark is rendered with surrounding inline
// delimiters (bold/italic/strike/underline).
func (m Mark) IsEmphasis() bool {
	switch m.Kind {
	case MarkBold, MarkItalic, MarkStrike, MarkUnderline:
		return true
	}
	return false
}

// Validate checks payload constraints for the mark.
func (m Mark) Validate() error {
	switch m.Kind {
	case MarkLink:
		if m.URL == "" {
			return fmt.Errorf("link mark requires a URL")
		}
	case MarkHeader:
		if m.Level < 1 || m.Level > 6 {
			return fmt.Errorf("header level %d out of range 1..6", m.Level)
		}
	}
	return nil
}

// MarksEqual compares two mark lists as order-independent sets.
func MarksEqual(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for _, m := range a {
		if !containsMark(b, m) {
			return false
		}
	}
	return true
}

func containsMark(marks []Mark, m Mark) bool {
	for _, o := range marks {
		if o == m {
			return true
		}
	}
	return false
}
