package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/utils"
)

// LoadListing fills the editor with a listing's description. A listing
// without one gets a fresh description file on first save.
func LoadListing(state *EditorState, path string) error {
	listing, err := files.ReadListing(path)
	if err != nil {
		return err
	}
	state.Listing = listing

	content := ""
	if listing.Description != "" {
		desc, err := files.ReadDescription(listing.Description)
		if err != nil {
			return err
		}
		content = desc.Content
		state.DescPath = listing.Description
	} else {
		state.DescPath = strings.TrimSuffix(path, ".yaml") + ".md"
	}

	state.Textarea.SetValue(content)
	state.Dirty = false
	RefreshAnalysis(state)
	return nil
}

// SaveDescription writes the buffer and links the description into the
// listing if it was not yet referenced.
func SaveDescription(state *EditorState) error {
	if state.Listing == nil {
		return fmt.Errorf("no listing loaded")
	}
	if err := files.WriteDescription(state.DescPath, state.Textarea.Value()); err != nil {
		return err
	}
	if state.Listing.Description != state.DescPath {
		state.Listing.Description = state.DescPath
		if err := files.WriteListing(state.Listing); err != nil {
			return err
		}
	}
	state.Dirty = false
	return nil
}

// InsertAtCursor inserts a text fragment at the current cursor position.
func InsertAtCursor(state *EditorState, fragment string) {
	state.Textarea.InsertString(fragment)
	state.Dirty = true
	RefreshAnalysis(state)
}

// RefreshAnalysis re-runs the converter over the buffer so the status line
// can show word count and conversion problems while typing.
func RefreshAnalysis(state *EditorState) {
	content := state.Textarea.Value()
	state.WordCount = utils.WordCount(content)
	_, diags := markdown.Parse(content)
	state.Diagnostics = diags
}

// RenderPreview renders the buffer through glamour for the preview pane. If
// rendering fails the raw buffer is shown, wrapped to the pane width.
func RenderPreview(state *EditorState, width int, style string) {
	if width < 20 {
		width = 20
	}
	options := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(style))
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		state.Preview = wordwrap.String(state.Textarea.Value(), width)
		return
	}
	rendered, err := renderer.Render(state.Textarea.Value())
	if err != nil {
		state.Preview = wordwrap.String(state.Textarea.Value(), width)
		return
	}
	state.Preview = rendered
}

// StatusLine summarizes the buffer for the editor footer.
func StatusLine(state *EditorState) string {
	parts := []string{utils.FormatWordCount(state.WordCount)}
	if minutes := utils.ReadingTimeMinutes(state.Textarea.Value()); minutes > 0 {
		parts = append(parts, fmt.Sprintf("~%d min read", minutes))
	}
	if state.Dirty {
		parts = append(parts, "unsaved")
	}
	if state.Diagnostics.HasProblems() {
		parts = append(parts, fmt.Sprintf("%d conversion problems", len(state.Diagnostics.Problems)))
	}
	return strings.Join(parts, " · ")
}
