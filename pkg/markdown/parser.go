// Package markdown converts between Markdown documents and the flat op
// sequences a rich-text widget edits. Parsing is delegated to goldmark;
// this package walks the resulting AST and flattens it into ops, and folds
// ops back into Markdown on the way out.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/feria/feria-cli/pkg/richtext"
)

var engine = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Parse converts a Markdown document into the op sequence a rich-text widget
// consumes. Constructs the editor cannot represent (code blocks, tables,
// images, ...) are kept as literal text and recorded as problems in the
// returned diagnostics; parsing never fails outright.
func Parse(source string) (richtext.Ops, *Diagnostics) {
	b := &opsBuilder{
		src:   []byte(source),
		diags: &Diagnostics{Source: source},
	}
	doc := engine.Parser().Parse(text.NewReader(b.src))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		b.block(node)
	}
	return b.ops, b.diags
}

type opsBuilder struct {
	src       []byte
	ops       richtext.Ops
	diags     *Diagnostics
	underline int // depth of open <u> wrappers during an inline walk
}

func (b *opsBuilder) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph:
		b.ops = append(b.ops, b.inlines(n)...)
		b.ops = append(b.ops, richtext.Op{Insert: "\n"})
	case *ast.TextBlock:
		b.ops = append(b.ops, b.inlines(n)...)
		b.ops = append(b.ops, richtext.Op{Insert: "\n"})
	case *ast.Heading:
		b.ops = append(b.ops, b.inlines(n)...)
		b.ops = append(b.ops, richtext.Op{
			Insert: "\n",
			Marks:  []richtext.Mark{richtext.Header(n.Level)},
		})
	case *ast.List:
		b.list(n)
	case *ast.Blockquote:
		b.problem(node, "block quotes are not supported; kept as plain text")
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			b.block(child)
		}
	case *ast.ThematicBreak:
		b.problem(node, "thematic breaks are not supported; dropped")
	default:
		b.problem(node, fmt.Sprintf("%s blocks are not supported; kept as plain text", node.Kind()))
		if raw := b.rawLines(node); raw != "" {
			b.ops = append(b.ops, richtext.Op{Insert: raw}, richtext.Op{Insert: "\n"})
		}
	}
}

func (b *opsBuilder) list(n *ast.List) {
	terminator := richtext.UnorderedItem()
	if n.IsOrdered() {
		terminator = richtext.OrderedItem()
	}
	// Each list contributes a leading empty-insert separator op, mirroring
	// the shape of the widget's own change events.
	b.ops = append(b.ops, richtext.Op{})
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		b.ops = append(b.ops, b.flattenItem(item)...)
		b.ops = append(b.ops, richtext.Op{
			Insert: "\n",
			Marks:  []richtext.Mark{terminator},
		})
	}
}

// flattenItem renders a list item's child blocks as one inline run. Child
// blocks are joined with single-space ops; nested lists collapse into the
// parent line, since the op model has no nested-list representation.
func (b *opsBuilder) flattenItem(item ast.Node) richtext.Ops {
	var ops richtext.Ops
	join := func() {
		if len(ops) > 0 {
			ops = append(ops, richtext.Op{Insert: " "})
		}
	}
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Paragraph:
			join()
			ops = append(ops, b.inlines(c)...)
		case *ast.TextBlock:
			join()
			ops = append(ops, b.inlines(c)...)
		case *ast.List:
			for sub := c.FirstChild(); sub != nil; sub = sub.NextSibling() {
				join()
				ops = append(ops, b.flattenItem(sub)...)
			}
		default:
			b.problem(child, fmt.Sprintf("%s blocks inside list items are not supported; kept as plain text", child.Kind()))
			if raw := b.rawLines(child); raw != "" {
				join()
				ops = append(ops, richtext.Op{Insert: raw})
			}
		}
	}
	return ops
}

func (b *opsBuilder) inlines(parent ast.Node) richtext.Ops {
	var ops richtext.Ops
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		ops = append(ops, b.inline(child)...)
	}
	return ops
}

func (b *opsBuilder) inline(node ast.Node) richtext.Ops {
	switch n := node.(type) {
	case *ast.Text:
		txt := unescapePunctuation(string(n.Segment.Value(b.src)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			txt += "\n"
		}
		if txt == "" {
			return nil
		}
		return richtext.Ops{b.textOp(txt)}
	case *ast.String:
		return richtext.Ops{b.textOp(string(n.Value))}
	case *ast.Emphasis:
		mark := richtext.Italic()
		if n.Level >= 2 {
			mark = richtext.Bold()
		}
		return withMark(b.inlines(n), mark)
	case *east.Strikethrough:
		return withMark(b.inlines(n), richtext.Strike())
	case *ast.Link:
		return withMark(b.inlines(n), richtext.Link(string(n.Destination)))
	case *ast.AutoLink:
		url := string(n.URL(b.src))
		label := string(n.Label(b.src))
		return richtext.Ops{b.textOp(label).WithMark(richtext.Link(url))}
	case *ast.RawHTML:
		return b.rawHTML(n)
	case *ast.CodeSpan:
		b.problem(node, "inline code is not supported; kept as plain text")
		return b.inlines(n)
	case *ast.Image:
		b.problem(node, "images are not supported; kept as alt text")
		return b.inlines(n)
	default:
		b.problem(node, fmt.Sprintf("%s inlines are not supported; dropped", node.Kind()))
		return nil
	}
}

// textOp builds a plain text op, tagging it with the underline mark while a
// <u> wrapper is open.
func (b *opsBuilder) textOp(txt string) richtext.Op {
	op := richtext.Op{Insert: txt}
	if b.underline > 0 {
		op.Marks = []richtext.Mark{richtext.Underline()}
	}
	return op
}

// rawHTML recognizes the <u>/</u> wrapper pair the editor uses for underline.
// Any other inline HTML is kept as literal text and reported.
func (b *opsBuilder) rawHTML(n *ast.RawHTML) richtext.Ops {
	var raw strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw.Write(seg.Value(b.src))
	}
	switch strings.ToLower(strings.TrimSpace(raw.String())) {
	case "<u>":
		b.underline++
		return nil
	case "</u>":
		if b.underline > 0 {
			b.underline--
		}
		return nil
	}
	b.problem(n, fmt.Sprintf("inline HTML %q is not supported; kept as plain text", raw.String()))
	return richtext.Ops{b.textOp(raw.String())}
}

func withMark(ops richtext.Ops, m richtext.Mark) richtext.Ops {
	out := make(richtext.Ops, len(ops))
	for i, op := range ops {
		out[i] = op.WithMark(m)
	}
	return out
}

// rawLines joins a block node's source lines, for literal-text fallbacks.
func (b *opsBuilder) rawLines(node ast.Node) string {
	lines := node.Lines()
	if lines == nil {
		return ""
	}
	var raw strings.Builder
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		raw.Write(line.Value(b.src))
	}
	return strings.TrimRight(raw.String(), "\n")
}

func (b *opsBuilder) problem(node ast.Node, msg string) {
	b.diags.Problems = append(b.diags.Problems, Problem{Line: b.lineOf(node), Message: msg})
}

// lineOf finds the 1-based source line of a node, walking up to the nearest
// block carrying position info for inline nodes.
func (b *opsBuilder) lineOf(node ast.Node) int {
	for n := node; n != nil; n = n.Parent() {
		if n.Type() != ast.TypeBlock {
			continue
		}
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return 1 + bytes.Count(b.src[:lines.At(0).Start], []byte{'\n'})
		}
	}
	return 1
}

// unescapePunctuation undoes CommonMark backslash escapes; goldmark leaves
// the backslashes in the text segments it hands back.
func unescapePunctuation(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
