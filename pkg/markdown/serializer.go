package markdown

import (
	"strings"

	"github.com/feria/feria-cli/pkg/richtext"
)

// Serialize folds an op sequence back into Markdown. It is the inverse of
// Parse for sequences the editor itself produces: Parse(Serialize(ops))
// yields ops again after normalization. Arbitrary Markdown pushed through
// Parse first may come back reformatted (that direction is lossy on exotic
// input).
func Serialize(ops richtext.Ops) string {
	var out strings.Builder
	var buf richtext.Ops

	for _, op := range ops {
		mark, isBlock := op.BlockMark()
		if isBlock {
			switch mark.Kind {
			case richtext.MarkOrderedItem:
				// Always a literal "1." — downstream renderers renumber.
				writeBlockLine(&out, "1. ", buf)
			case richtext.MarkUnorderedItem:
				writeBlockLine(&out, "- ", buf)
			case richtext.MarkHeader:
				writeBlockLine(&out, strings.Repeat("#", mark.Level)+" ", buf)
			}
			buf = nil
			continue
		}

		// Plain multi-line inserts flush a line per newline boundary and
		// keep the remainder buffered.
		parts := strings.Split(op.Insert, "\n")
		for i, part := range parts {
			if part != "" {
				buf = append(buf, richtext.Op{Insert: part, Marks: op.Marks})
			}
			if i < len(parts)-1 {
				buf = flushPlainLine(&out, buf)
			}
		}
	}
	if len(buf) > 0 {
		flushPlainLine(&out, buf)
	}
	return out.String()
}

// writeBlockLine flushes the buffered run as the content of a prefixed block
// line (list item or heading).
func writeBlockLine(out *strings.Builder, prefix string, buf richtext.Ops) {
	line := prefix + renderInline(buf)
	out.WriteString(strings.TrimRight(line, " "))
	out.WriteByte('\n')
}

// flushPlainLine flushes the buffered run as a plain paragraph line.
// Whitespace-only content produces no output.
func flushPlainLine(out *strings.Builder, buf richtext.Ops) richtext.Ops {
	line := renderInline(buf)
	if strings.TrimSpace(line) != "" {
		out.WriteString(escapeLineStart(line))
		out.WriteByte('\n')
	}
	return nil
}

// delimiterCollisions lists the asterisk runs two adjacent emphasis segments
// can fuse into at their boundary. "**bold*****both***" is the classic case:
// the five-asterisk run parses as neither bold-then-both nor both-then-bold.
// Each is resolved by re-wrapping the right-hand segment with the underscore
// alternates, e.g. "**bold**__*both*__".
var delimiterCollisions = []string{
	"**",     // italic close meeting italic open reads as a bold opener
	"***",    // bold close meeting italic open, and the symmetric case
	"****",   // bold close meeting bold open
	"*****",  // bold close meeting bold+italic open
	"******", // bold+italic close meeting bold+italic open
}

func renderInline(ops richtext.Ops) string {
	var out strings.Builder
	for _, op := range ops {
		seg := renderOp(op, false)
		if boundaryCollides(out.String(), seg) {
			seg = renderOp(op, true)
		}
		out.WriteString(seg)
	}
	return out.String()
}

func boundaryCollides(tail, head string) bool {
	t, h := trailingAsterisks(tail), leadingAsterisks(head)
	if t == 0 || h == 0 {
		return false
	}
	run := strings.Repeat("*", t+h)
	for _, c := range delimiterCollisions {
		if run == c {
			return true
		}
	}
	return false
}

func trailingAsterisks(s string) int {
	return len(s) - len(strings.TrimRight(s, "*"))
}

func leadingAsterisks(s string) int {
	return len(s) - len(strings.TrimLeft(s, "*"))
}

// renderOp wraps one op's text in its marks' delimiters, innermost mark
// first. Surrounding whitespace is re-padded outside the delimiters so
// "** bold **" can never be produced. With alternates, asterisk-delimited
// emphasis switches to underscores (see delimiterCollisions).
func renderOp(op richtext.Op, alternates bool) string {
	lead, core, trail := splitSurroundingSpace(op.Insert)
	if core == "" {
		return op.Insert
	}
	core = escapeInline(core)
	for i := len(op.Marks) - 1; i >= 0; i-- {
		core = wrapMark(op.Marks[i], core, alternates)
	}
	return lead + core + trail
}

func wrapMark(m richtext.Mark, text string, alternates bool) string {
	switch m.Kind {
	case richtext.MarkBold:
		if alternates {
			return "__" + text + "__"
		}
		return "**" + text + "**"
	case richtext.MarkItalic:
		if alternates {
			return "_" + text + "_"
		}
		return "*" + text + "*"
	case richtext.MarkStrike:
		return "~~" + text + "~~"
	case richtext.MarkUnderline:
		return "<u>" + text + "</u>"
	case richtext.MarkLink:
		return "[" + text + "](" + m.URL + ")"
	}
	return text
}

func splitSurroundingSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeft(s, " \t")
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRight(core, " \t")
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}

// escapedPunctuation lists characters that read as Markdown syntax when they
// appear literally inside a text run.
const escapedPunctuation = "\\*_~[]`<"

func escapeInline(s string) string {
	if !strings.ContainsAny(s, escapedPunctuation) {
		return s
	}
	var out strings.Builder
	for _, r := range s {
		if strings.ContainsRune(escapedPunctuation, r) {
			out.WriteByte('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// lineStartEscapes maps line-leading sequences that would turn a plain line
// into a block construct to their escaped spellings. Asterisk and underscore
// leads are already covered by the inline escape table.
var lineStartEscapes = []struct{ prefix, escaped string }{
	{"# ", "\\# "},
	{"## ", "\\## "},
	{"### ", "\\### "},
	{"#### ", "\\#### "},
	{"##### ", "\\##### "},
	{"###### ", "\\###### "},
	{"- ", "\\- "},
	{"+ ", "\\+ "},
	{"> ", "\\> "},
}

func escapeLineStart(line string) string {
	for _, rule := range lineStartEscapes {
		if strings.HasPrefix(line, rule.prefix) {
			return rule.escaped + line[len(rule.prefix):]
		}
	}
	// A line of only #, - or = would read as an empty heading, a thematic
	// break or a setext underline.
	if isRunOf(line, '#') || isRunOf(line, '-') || isRunOf(line, '=') {
		return "\\" + line
	}
	// Leading "1. " (or "1) ") starts an ordered list.
	if i := leadingDigits(line); i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return line[:i] + "\\" + line[i:]
	}
	return line
}

func isRunOf(s string, c byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return true
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
