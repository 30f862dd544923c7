package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/feria/feria-cli/pkg/models"
)

type sessionState int

const (
	browseView sessionState = iota
	editorView
	cropView
)

type App struct {
	state     sessionState
	settings  *models.Settings
	logger    *zap.Logger
	browse    *BrowseModel
	editor    *EditorModel
	crop      *CropModel
	width     int
	height    int
	statusMsg string

	// set by OpenListing to skip the browse view on startup
	initialListing string
}

func NewApp(settings *models.Settings, logger *zap.Logger) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		state:    browseView,
		settings: settings,
		logger:   logger,
		browse:   NewBrowseModel(),
	}
}

// OpenListing makes the app start in the editor on the given listing instead
// of the browse view. Call it before handing the app to the tea program.
func (a *App) OpenListing(path string) {
	a.initialListing = path
}

func (a *App) Init() tea.Cmd {
	if a.initialListing != "" {
		listing := a.initialListing
		a.initialListing = ""
		return func() tea.Msg {
			return SwitchViewMsg{view: editorView, listing: listing}
		}
	}
	return a.browse.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		if a.browse != nil {
			a.browse.SetSize(msg.Width, msg.Height)
		}
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		if a.crop != nil {
			a.crop.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case browseView:
			a.state = browseView
			if a.browse == nil {
				a.browse = NewBrowseModel()
			} else {
				// Reload listings when returning to the browse view
				a.browse.loadListings()
			}
			a.browse.SetSize(a.width, a.height)
			return a, a.browse.Init()
		case editorView:
			a.state = editorView
			if a.editor == nil {
				a.editor = NewEditorModel(a.settings, a.logger)
			}
			a.editor.SetSize(a.width, a.height)
			if cmd := a.editor.SetListing(msg.listing); cmd != nil {
				return a, tea.Batch(a.editor.Init(), cmd)
			}
			return a, a.editor.Init()
		case cropView:
			a.state = cropView
			if a.crop == nil {
				a.crop = NewCropModel(a.settings, a.logger)
			}
			a.crop.SetSize(a.width, a.height)
			if err := a.crop.SetListing(msg.listing); err != nil {
				a.state = browseView
				a.statusMsg = err.Error()
				return a, nil
			}
			return a, a.crop.Init()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case browseView:
		var m tea.Model
		m, cmd = a.browse.Update(msg)
		if bm, ok := m.(*BrowseModel); ok {
			a.browse = bm
		}
	case editorView:
		var m tea.Model
		m, cmd = a.editor.Update(msg)
		if em, ok := m.(*EditorModel); ok {
			a.editor = em
		}
	case cropView:
		var m tea.Model
		m, cmd = a.crop.Update(msg)
		if cm, ok := m.(*CropModel); ok {
			a.crop = cm
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case browseView:
		content = a.browse.View()
	case editorView:
		content = a.editor.View()
	case cropView:
		content = a.crop.View()
	default:
		content = "Unknown view"
	}

	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

		statusBar := statusStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view    sessionState
	listing string // listing path for the editor and crop views
}
