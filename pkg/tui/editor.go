package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/feria/feria-cli/pkg/models"
)

// EditorModel is the description editor: a Markdown buffer with an optional
// rendered preview, live conversion diagnostics and link insertion.
type EditorModel struct {
	state    *EditorState
	settings *models.Settings
	logger   *zap.Logger
	width    int
	height   int
	loadErr  string
}

func NewEditorModel(settings *models.Settings, logger *zap.Logger) *EditorModel {
	return &EditorModel{
		state:    NewEditorState(settings.Editor.ShowPreview),
		settings: settings,
		logger:   logger,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	editorWidth := width - 4
	if m.state.ShowPreview {
		editorWidth = width/2 - 4
	}
	if editorWidth < 20 {
		editorWidth = 20
	}
	m.state.Textarea.SetWidth(editorWidth)
	textHeight := height - 6
	if textHeight < 5 {
		textHeight = 5
	}
	m.state.Textarea.SetHeight(textHeight)
}

// SetListing loads a listing into the editor. The returned command reports a
// load failure as a status message.
func (m *EditorModel) SetListing(path string) tea.Cmd {
	m.loadErr = ""
	if err := LoadListing(m.state, path); err != nil {
		m.loadErr = err.Error()
		m.logger.Warn("failed to load listing into editor",
			zap.String("listing", path), zap.Error(err))
		return statusCmd(m.loadErr)
	}
	m.logProblems()
	if m.state.ShowPreview {
		m.refreshPreview()
	}
	return m.state.Textarea.Focus()
}

func (m *EditorModel) refreshPreview() {
	RenderPreview(m.state, m.width/2-4, m.settings.Editor.PreviewStyle)
}

// logProblems sends the buffer's conversion problems to the logging sink.
// The footer only shows the first one; the log keeps them all.
func (m *EditorModel) logProblems() {
	if m.state.Diagnostics.HasProblems() {
		m.logger.Debug("description has conversion problems", m.state.Diagnostics.Fields()...)
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LinkInsertedMsg:
		InsertAtCursor(m.state, msg.Markdown)
		if m.state.ShowPreview {
			m.refreshPreview()
		}
		return m, m.state.Textarea.Focus()

	case tea.KeyMsg:
		if m.state.ExitConfirm.Active() {
			return m, m.state.ExitConfirm.Update(msg)
		}
		if m.state.LinkModal.Active() {
			return m, m.state.LinkModal.Update(msg)
		}

		switch msg.String() {
		case "esc":
			if m.state.Dirty {
				m.state.ExitConfirm.Show(
					"Discard unsaved changes?", true,
					func() tea.Cmd { return switchTo(browseView, "") },
					nil,
				)
				return m, nil
			}
			return m, switchTo(browseView, "")
		case "ctrl+s":
			if err := SaveDescription(m.state); err != nil {
				m.logger.Warn("failed to save description",
					zap.String("path", m.state.DescPath), zap.Error(err))
				return m, statusCmd(err.Error())
			}
			return m, statusCmd("saved " + m.state.DescPath)
		case "ctrl+k":
			m.state.Textarea.Blur()
			return m, m.state.LinkModal.Open("", "")
		case "ctrl+p":
			m.state.ShowPreview = !m.state.ShowPreview
			m.SetSize(m.width, m.height)
			if m.state.ShowPreview {
				m.refreshPreview()
			}
			return m, nil
		}
	}

	prevValue := m.state.Textarea.Value()
	var cmd tea.Cmd
	m.state.Textarea, cmd = m.state.Textarea.Update(msg)
	if m.state.Textarea.Value() != prevValue {
		m.state.Dirty = true
		RefreshAnalysis(m.state)
		m.logProblems()
		if m.state.ShowPreview {
			m.refreshPreview()
		}
	}
	return m, cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder

	title := "EDITOR"
	if m.state.Listing != nil {
		title = fmt.Sprintf("EDITOR — %s", m.state.Listing.Title)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.loadErr != "" {
		b.WriteString(errorStyle.Render(m.loadErr))
		b.WriteString("\n")
		return b.String()
	}

	if m.state.ShowPreview {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.state.Textarea.View(),
			"  ",
			m.state.Preview,
		))
	} else {
		b.WriteString(m.state.Textarea.View())
	}
	b.WriteString("\n")

	if m.state.LinkModal.Active() {
		b.WriteString("\n")
		b.WriteString(m.state.LinkModal.View())
		b.WriteString("\n")
	}
	if m.state.ExitConfirm.Active() {
		b.WriteString("\n")
		b.WriteString(m.state.ExitConfirm.ViewWithWidth(m.width))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(StatusLine(m.state)))
	if m.state.Diagnostics.HasProblems() {
		first := m.state.Diagnostics.Problems[0]
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("line %d: %s", first.Line, first.Message)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+s save · ctrl+k link · ctrl+p preview · esc back"))
	return b.String()
}
