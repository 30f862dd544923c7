package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LinkModalMode is the modal's lifecycle: either hidden or editing a
// label/url pair. There is no intermediate state; cancelling discards the
// fields entirely.
type LinkModalMode int

const (
	LinkModalHidden LinkModalMode = iota
	LinkModalEditing
)

// linkModalField tracks which input has focus.
type linkModalField int

const (
	linkFieldLabel linkModalField = iota
	linkFieldURL
)

// LinkInsertedMsg carries the finished link back to the editor.
type LinkInsertedMsg struct {
	Markdown string
}

// LinkModal collects a link label and URL. Opening it with selected text
// pre-fills the label, matching what a rich-text toolbar does.
type LinkModal struct {
	mode  LinkModalMode
	field linkModalField
	label textinput.Model
	url   textinput.Model
}

func NewLinkModal() *LinkModal {
	label := textinput.New()
	label.Placeholder = "link text"
	label.Prompt = "Label: "
	label.CharLimit = 200

	url := textinput.New()
	url.Placeholder = "https://…"
	url.Prompt = "URL:   "
	url.CharLimit = 500

	return &LinkModal{label: label, url: url}
}

// Mode returns the current lifecycle state.
func (m *LinkModal) Mode() LinkModalMode { return m.mode }

// Active reports whether the modal is capturing input.
func (m *LinkModal) Active() bool { return m.mode == LinkModalEditing }

// Open shows the modal with the label and URL pre-filled, as when editing an
// existing link. With a label present, focus starts on the URL field.
func (m *LinkModal) Open(initialLabel, initialURL string) tea.Cmd {
	m.mode = LinkModalEditing
	m.label.SetValue(initialLabel)
	m.url.SetValue(initialURL)
	if initialLabel != "" {
		m.field = linkFieldURL
		m.label.Blur()
		return m.url.Focus()
	}
	m.field = linkFieldLabel
	m.url.Blur()
	return m.label.Focus()
}

// Close hides the modal, discarding both fields.
func (m *LinkModal) Close() {
	m.mode = LinkModalHidden
	m.label.Blur()
	m.url.Blur()
	m.label.SetValue("")
	m.url.SetValue("")
}

// Update handles input while the modal is open. Enter with a non-empty URL
// emits a LinkInsertedMsg and closes; esc cancels without emitting.
func (m *LinkModal) Update(msg tea.Msg) tea.Cmd {
	if m.mode != LinkModalEditing {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Close()
			return nil
		case "tab", "shift+tab":
			m.toggleFocus()
			return nil
		case "enter":
			label := m.label.Value()
			url := m.url.Value()
			if url == "" {
				// enter from the label field moves on instead of committing
				if m.field == linkFieldLabel {
					m.toggleFocus()
				}
				return nil
			}
			if label == "" {
				label = url
			}
			m.Close()
			markdown := fmt.Sprintf("[%s](%s)", label, url)
			return func() tea.Msg {
				return LinkInsertedMsg{Markdown: markdown}
			}
		}
	}

	var cmd tea.Cmd
	if m.field == linkFieldLabel {
		m.label, cmd = m.label.Update(msg)
	} else {
		m.url, cmd = m.url.Update(msg)
	}
	return cmd
}

func (m *LinkModal) toggleFocus() {
	if m.field == linkFieldLabel {
		m.field = linkFieldURL
		m.label.Blur()
		m.url.Focus()
	} else {
		m.field = linkFieldLabel
		m.url.Blur()
		m.label.Focus()
	}
}

func (m *LinkModal) View() string {
	if m.mode != LinkModalEditing {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Insert link"),
		"",
		m.label.View(),
		m.url.View(),
		"",
		helpStyle.Render("tab switch · enter insert · esc cancel"),
	)
	return borderStyle.Render(content)
}
