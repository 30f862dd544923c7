package tui

import (
	"github.com/charmbracelet/bubbles/textarea"

	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/models"
)

// EditorState holds the description editor's state; the operations live in
// editor_operations.go.
type EditorState struct {
	Listing  *models.Listing
	DescPath string

	Textarea textarea.Model
	Dirty    bool

	ShowPreview bool
	Preview     string

	// refreshed from the converter after every content change
	WordCount   int
	Diagnostics *markdown.Diagnostics

	LinkModal   *LinkModal
	ExitConfirm *ConfirmationModel
}

// NewEditorState creates an empty editor state.
func NewEditorState(showPreview bool) *EditorState {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(20)

	return &EditorState{
		Textarea:    ta,
		ShowPreview: showPreview,
		LinkModal:   NewLinkModal(),
		ExitConfirm: NewConfirmation(),
	}
}
