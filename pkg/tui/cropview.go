package tui

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/feria/feria-cli/pkg/cropper"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
	"github.com/feria/feria-cli/pkg/rasterize"
)

// panStep is how many source pixels one arrow key moves the selection.
const panStep = 16.0

type cropDoneMsg struct {
	result rasterize.Result
}

// CropModel hosts the crop engine and its rasterizing collaborator. The
// image itself acts as the container, so all geometry is in source pixels.
type CropModel struct {
	settings *models.Settings
	logger   *zap.Logger

	engine  *cropper.Engine
	service *rasterize.Service
	cancel  context.CancelFunc

	listing    *models.Listing
	sourcePath string
	outputName string

	width  int
	height int
	status string
}

func NewCropModel(settings *models.Settings, logger *zap.Logger) *CropModel {
	timeout := time.Duration(settings.Crop.TimeoutSeconds) * time.Second
	return &CropModel{
		settings: settings,
		logger:   logger,
		service:  rasterize.NewService(timeout, logger),
	}
}

func (m *CropModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetListing prepares the crop view for a listing's image.
func (m *CropModel) SetListing(path string) error {
	listing, err := files.ReadListing(path)
	if err != nil {
		return err
	}
	if listing.Image == "" {
		return fmt.Errorf("listing %s has no image to crop", listing.Path)
	}
	aspect, err := models.ParseAspectRatio(m.settings.Crop.AspectRatio)
	if err != nil {
		return err
	}

	sourcePath := files.ImagePath(listing.Image)
	engine := cropper.New(aspect)
	if err := engine.LoadFrom(imageFileMeasurer{path: sourcePath}); err != nil {
		return err
	}

	m.listing = listing
	m.sourcePath = sourcePath
	m.outputName = croppedName(listing.Image)
	m.status = ""
	m.engine = engine
	return nil
}

// imageFileMeasurer measures a source image file. The image doubles as its
// own container, so engine geometry is in source pixels.
type imageFileMeasurer struct {
	path string
}

func (m imageFileMeasurer) Measure() (cropper.Rect, cropper.Rect, error) {
	width, height, err := imageDimensions(m.path)
	if err != nil {
		return cropper.Rect{}, cropper.Rect{}, err
	}
	box := cropper.Rect{Width: float64(width), Height: float64(height)}
	return box, box, nil
}

// Init starts the rasterize worker on first entry. Re-entering the view
// reuses the running worker and its result listener.
func (m *CropModel) Init() tea.Cmd {
	if m.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.service.Run(ctx)
	return m.waitForResult()
}

// waitForResult blocks on the service's results channel as a tea command.
func (m *CropModel) waitForResult() tea.Cmd {
	service := m.service
	if service == nil {
		return nil
	}
	return func() tea.Msg {
		return cropDoneMsg{result: <-service.Results()}
	}
}

func (m *CropModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cropDoneMsg:
		return m, m.finishCrop(msg.result)

	case tea.KeyMsg:
		if m.engine == nil {
			if msg.String() == "esc" {
				return m, switchTo(browseView, "")
			}
			return m, nil
		}
		switch msg.String() {
		case "esc", "q":
			return m, switchTo(browseView, "")
		case "up":
			m.engine.MoveBy(0, -panStep)
		case "down":
			m.engine.MoveBy(0, panStep)
		case "left":
			m.engine.MoveBy(-panStep, 0)
		case "right":
			m.engine.MoveBy(panStep, 0)
		case "+", "=":
			// zoom buttons commit immediately, unlike slider ticks
			m.engine.OnZoomButton(cropper.ZoomIn)
			m.engine.OnSliderCommit()
			return m, m.submitIfRequested()
		case "-":
			m.engine.OnZoomButton(cropper.ZoomOut)
			m.engine.OnSliderCommit()
			return m, m.submitIfRequested()
		case "[":
			m.engine.OnSliderChange(m.engine.State().Zoom - sliderTick(m.engine.State()))
		case "]":
			m.engine.OnSliderChange(m.engine.State().Zoom + sliderTick(m.engine.State()))
		case "enter", " ":
			m.engine.OnSliderCommit()
			return m, m.submitIfRequested()
		case "r":
			// forget geometry and re-measure, as after a fresh load
			m.engine.Reset()
			if err := m.SetListing(m.listing.Path); err != nil {
				return m, statusCmd(err.Error())
			}
		}
	}
	return m, nil
}

// sliderTick is a fiftieth of the valid range, a finer grain than the zoom
// buttons.
func sliderTick(s cropper.State) float64 {
	return (s.MaxZoom - cropper.MinZoom) / 50
}

// submitIfRequested queues a rasterization when the engine has raised its
// request flag. The service keeps only the newest request.
func (m *CropModel) submitIfRequested() tea.Cmd {
	state := m.engine.State()
	if !state.RequestingCrop || m.service == nil {
		return nil
	}
	id := m.service.Submit(rasterize.Request{
		SourcePath:     m.sourcePath,
		OutputPath:     files.CropPath(m.outputName),
		Container:      state.Container,
		Image:          state.Image,
		Selection:      m.engine.Selection(),
		MaxOutputWidth: m.settings.Crop.MaxOutputWidth,
	})
	m.logger.Debug("submitted crop", zap.String("id", id.String()))
	m.status = "rasterizing…"
	return nil
}

// finishCrop settles a completed rasterization: the engine's request flag
// clears whether it worked or not.
func (m *CropModel) finishCrop(result rasterize.Result) tea.Cmd {
	if m.engine != nil {
		m.engine.OnCropComplete()
	}
	if result.Err != nil {
		m.status = "crop failed: " + result.Err.Error()
		return m.waitForResult()
	}
	m.status = fmt.Sprintf("cropped to %dx%d", result.Width, result.Height)
	if m.listing != nil && m.listing.CroppedImage != m.outputName {
		m.listing.CroppedImage = m.outputName
		if err := files.WriteListing(m.listing); err != nil {
			m.logger.Warn("failed to record cropped image",
				zap.String("listing", m.listing.Path), zap.Error(err))
			m.status = err.Error()
		}
	}
	return m.waitForResult()
}

func (m *CropModel) View() string {
	var b strings.Builder
	title := "CROP"
	if m.listing != nil {
		title = fmt.Sprintf("CROP — %s", m.listing.Title)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.engine == nil || !m.engine.Loaded() {
		b.WriteString(dimStyle.Render("No image loaded."))
		b.WriteString("\n")
		return b.String()
	}

	state := m.engine.State()
	sel := m.engine.Selection()

	b.WriteString(renderFrame(state, sel, 48))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("zoom %.0f%% of width (max %.0f%%)   selection %.0fx%.0f at (%.0f, %.0f)\n",
		state.Zoom*100, state.MaxZoom*100,
		sel.Width, sel.Height, sel.Left, sel.Top))
	b.WriteString(renderSlider(state, 40))
	b.WriteString("\n")

	if state.RequestingCrop {
		b.WriteString(dimStyle.Render("rasterizing…"))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows pan · +/- zoom · [/] fine zoom · enter apply · r reset · esc back"))
	return b.String()
}

// renderFrame draws the container with the selection marked, scaled to the
// given character width. Terminal cells are roughly twice as tall as wide,
// so vertical resolution is halved.
func renderFrame(state cropper.State, sel cropper.Rect, cols int) string {
	if state.Container.Empty() || cols < 4 {
		return ""
	}
	scale := float64(cols) / state.Container.Width
	rows := int(state.Container.Height * scale / 2)
	if rows < 2 {
		rows = 2
	}

	selLeft := int(sel.Left * scale)
	selRight := int(sel.Right() * scale)
	selTop := int(sel.Top * scale / 2)
	selBottom := int(sel.Bottom() * scale / 2)

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", cols) + "┐\n")
	for row := 0; row < rows; row++ {
		b.WriteString("│")
		for col := 0; col < cols; col++ {
			inside := col >= selLeft && col < selRight && row >= selTop && row <= selBottom
			if inside {
				b.WriteString("█")
			} else {
				b.WriteString("·")
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + strings.Repeat("─", cols) + "┘\n")
	return b.String()
}

// renderSlider draws the zoom position within [MinZoom, MaxZoom].
func renderSlider(state cropper.State, cols int) string {
	span := state.MaxZoom - cropper.MinZoom
	pos := 0
	if span > 0 {
		pos = int(float64(cols-1) * (state.Zoom - cropper.MinZoom) / span)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > cols-1 {
		pos = cols - 1
	}
	bar := []rune(strings.Repeat("─", cols))
	bar[pos] = '●'
	return "zoom  " + string(bar)
}

func croppedName(imageName string) string {
	if dot := strings.LastIndex(imageName, "."); dot > 0 {
		return imageName[:dot] + "-crop" + imageName[dot:]
	}
	return imageName + "-crop"
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
