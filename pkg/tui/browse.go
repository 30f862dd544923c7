package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	reflowtruncate "github.com/muesli/reflow/truncate"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
	"github.com/feria/feria-cli/pkg/search"
)

// BrowseModel is the start screen: all listings, filterable with the same
// query language the search command uses.
type BrowseModel struct {
	listings []*models.Listing
	cursor   int
	width    int
	height   int

	filtering   bool
	filterInput textinput.Model
	filterErr   string

	confirm *ConfirmationModel
}

func NewBrowseModel() *BrowseModel {
	input := textinput.New()
	input.Placeholder = "tag:ceramics under:20 wool"
	input.Prompt = "/ "
	input.CharLimit = 120

	m := &BrowseModel{
		filterInput: input,
		confirm:     NewConfirmation(),
	}
	m.loadListings()
	return m
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadListings refreshes the list, applying the current filter query.
func (m *BrowseModel) loadListings() {
	m.filterErr = ""
	engine := search.NewEngine()
	if err := engine.BuildIndex(); err != nil {
		m.filterErr = err.Error()
		m.listings = nil
		return
	}
	results, err := engine.Search(m.filterInput.Value())
	if err != nil {
		m.filterErr = err.Error()
		return
	}
	m.listings = make([]*models.Listing, len(results))
	for i, r := range results {
		m.listings[i] = r.Listing
	}
	if m.cursor >= len(m.listings) {
		m.cursor = len(m.listings) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowseModel) selected() *models.Listing {
	if m.cursor < 0 || m.cursor >= len(m.listings) {
		return nil
	}
	return m.listings[m.cursor]
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm.Active() {
		return m, m.confirm.Update(keyMsg)
	}

	if m.filtering {
		switch keyMsg.String() {
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			m.loadListings()
			return m, nil
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.loadListings()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.listings)-1 {
			m.cursor++
		}
	case "/":
		m.filtering = true
		return m, m.filterInput.Focus()
	case "enter", "e":
		if l := m.selected(); l != nil {
			return m, switchTo(editorView, l.Path)
		}
	case "c":
		if l := m.selected(); l != nil {
			return m, switchTo(cropView, l.Path)
		}
	case "d":
		if l := m.selected(); l != nil {
			path, title := l.Path, l.Title
			m.confirm.Show(
				fmt.Sprintf("Delete listing %q?", title), true,
				func() tea.Cmd {
					if err := files.DeleteListing(path); err != nil {
						return statusCmd(err.Error())
					}
					m.loadListings()
					return statusCmd("deleted " + path)
				},
				nil,
			)
		}
	case "r":
		m.loadListings()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *BrowseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FERIA — LISTINGS"))
	b.WriteString("\n\n")

	if m.filtering {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n\n")
	} else if m.filterInput.Value() != "" {
		b.WriteString(dimStyle.Render("filter: " + m.filterInput.Value()))
		b.WriteString("\n\n")
	}

	if m.filterErr != "" {
		b.WriteString(errorStyle.Render(m.filterErr))
		b.WriteString("\n\n")
	}

	if len(m.listings) == 0 {
		b.WriteString(dimStyle.Render("No listings. Run 'feria create' to add one."))
		b.WriteString("\n")
	}
	for i, listing := range m.listings {
		line := fmt.Sprintf("%-40s %8.2f %-4s %s",
			truncate(listing.Title, 40),
			listing.Price, listing.Currency,
			strings.Join(listing.Tags, ","))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(m.confirm.ViewWithWidth(m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate · enter edit · c crop · d delete · / filter · r reload · q quit"))
	return b.String()
}

func switchTo(view sessionState, listing string) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{view: view, listing: listing}
	}
}

func statusCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(message)
	}
}

func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	return reflowtruncate.StringWithTail(s, uint(max), "…")
}
