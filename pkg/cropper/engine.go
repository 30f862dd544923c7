package cropper

import "math"

const (
	// MinZoom is the smallest selectable zoom multiplier.
	MinZoom = 0.1
	// initialZoomFactor scales the maximum zoom for a freshly loaded image.
	initialZoomFactor = 0.75
	// reflowTolerance separates a layout reflow from a genuinely new image:
	// image dimension deltas within this many pixels keep the current zoom
	// and offset.
	reflowTolerance = 50.0
	// zoomStepFraction is the share of the valid zoom range one button
	// click moves.
	zoomStepFraction = 0.10
)

// ZoomDirection selects which way a zoom button moves.
type ZoomDirection int

const (
	ZoomOut ZoomDirection = iota
	ZoomIn
)

// State is the crop selection's full geometric state. CenterX/CenterY are in
// the same coordinate space as the measured rects; Zoom is a multiplier on
// container width.
type State struct {
	AspectRatio    float64
	Container      Rect
	Image          Rect
	CenterX        float64
	CenterY        float64
	Zoom           float64
	MaxZoom        float64
	Dragging       bool
	Reflowing      bool
	RequestingCrop bool
}

// Engine reacts to measurement and gesture events and keeps State valid.
// It is single-threaded by design; callers drive it from their event loop.
type Engine struct {
	aspectRatio float64
	state       State
	loaded      bool
}

// New creates an engine targeting the given selection aspect ratio
// (width / height, must be positive).
func New(aspectRatio float64) *Engine {
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	return &Engine{aspectRatio: aspectRatio}
}

// Loaded reports whether a measured image is present. Before the first
// successful measurement the engine has no geometry to offer.
func (e *Engine) Loaded() bool { return e.loaded }

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Reset forgets the current image, so the next measurement is treated as a
// fresh load.
func (e *Engine) Reset() {
	e.state = State{}
	e.loaded = false
}

// MaxZoomFor computes the largest zoom multiplier that keeps a selection of
// the given aspect ratio inside the container.
func MaxZoomFor(container Rect, aspectRatio float64) float64 {
	if container.Width <= 0 {
		return MinZoom
	}
	return math.Min(container.Width, container.Height*aspectRatio) / container.Width
}

// OnImageLoaded installs fresh measurements. If the image dimensions are
// within the reflow tolerance of the previous ones, the current zoom and
// relative offset survive and the center translates by the container origin
// delta. Otherwise the selection re-centers at the initial zoom; Reflowing is
// raised when that happens to an already-loaded image, so callers can
// suppress transitions during layout churn.
func (e *Engine) OnImageLoaded(container, image Rect) {
	maxZoom := MaxZoomFor(container, e.aspectRatio)

	if e.loaded && withinReflowTolerance(e.state.Image, image) {
		e.state.CenterX += container.Left - e.state.Container.Left
		e.state.CenterY += container.Top - e.state.Container.Top
		e.state.Container = container
		e.state.Image = image
		e.state.MaxZoom = maxZoom
		e.state.Zoom = clamp(e.state.Zoom, MinZoom, maxZoom)
		e.state.Reflowing = false
		return
	}

	reflowing := e.loaded
	e.state = State{
		AspectRatio: e.aspectRatio,
		Container:   container,
		Image:       image,
		CenterX:     container.CenterX(),
		CenterY:     container.CenterY(),
		Zoom:        clamp(initialZoomFactor*maxZoom, MinZoom, maxZoom),
		MaxZoom:     maxZoom,
		Reflowing:   reflowing,
	}
	e.loaded = true
}

func withinReflowTolerance(prev, next Rect) bool {
	return math.Abs(prev.Width-next.Width) <= reflowTolerance &&
		math.Abs(prev.Height-next.Height) <= reflowTolerance
}

// OnDragStart begins a drag gesture.
func (e *Engine) OnDragStart() {
	if !e.loaded {
		return
	}
	e.state.Dragging = true
}

// OnDragMove recenters the selection on the pointer position, clamped so the
// full selection rectangle stays inside the container.
func (e *Engine) OnDragMove(x, y float64) {
	if !e.loaded || !e.state.Dragging {
		return
	}
	e.recenter(x, y)
}

// OnDragEnd finishes a drag gesture and requests a fresh cropped image.
func (e *Engine) OnDragEnd() {
	if !e.loaded || !e.state.Dragging {
		return
	}
	e.state.Dragging = false
	e.state.RequestingCrop = true
}

// MoveBy translates the selection center by a delta, with the same clamping
// as a drag. Keyboard-driven hosts use this instead of pointer positions.
func (e *Engine) MoveBy(dx, dy float64) {
	if !e.loaded {
		return
	}
	e.recenter(e.state.CenterX+dx, e.state.CenterY+dy)
}

func (e *Engine) recenter(x, y float64) {
	sel := e.Selection()
	c := e.state.Container
	e.state.CenterX = clamp(x, c.Left+sel.Width/2, c.Right()-sel.Width/2)
	e.state.CenterY = clamp(y, c.Top+sel.Height/2, c.Bottom()-sel.Height/2)
}

// OnZoomButton moves the zoom by one step: a tenth of the valid range,
// clamped to [MinZoom, MaxZoom].
func (e *Engine) OnZoomButton(dir ZoomDirection) {
	if !e.loaded {
		return
	}
	step := zoomStepFraction * (e.state.MaxZoom - MinZoom)
	if dir == ZoomOut {
		step = -step
	}
	e.setZoom(e.state.Zoom + step)
}

// OnSliderChange sets the zoom from a continuous control. Intermediate ticks
// do not request rasterization; only OnSliderCommit does.
func (e *Engine) OnSliderChange(value float64) {
	if !e.loaded {
		return
	}
	e.setZoom(value)
}

// OnSliderCommit settles a slider gesture and requests a fresh cropped image.
func (e *Engine) OnSliderCommit() {
	if !e.loaded {
		return
	}
	e.state.RequestingCrop = true
}

func (e *Engine) setZoom(value float64) {
	e.state.Zoom = clamp(value, MinZoom, e.state.MaxZoom)
	// Re-clamp the center: a larger selection may no longer fit around it.
	e.recenter(e.state.CenterX, e.state.CenterY)
}

// OnCropComplete clears the outstanding-rasterization flag. The collaborator
// calls this whether the crop succeeded or failed; the engine only tracks
// that a request is no longer in flight.
func (e *Engine) OnCropComplete() {
	e.state.RequestingCrop = false
}

// Selection returns the current selection rectangle in container-local
// coordinates. It is derived, never stored.
func (e *Engine) Selection() Rect {
	return ComputeSelection(e.state)
}

// ComputeSelection derives the selection rectangle for a state: width is
// container width times zoom, shrunk if the implied height would exceed the
// container, and the origin is clamped so the rectangle stays fully inside.
func ComputeSelection(s State) Rect {
	if s.AspectRatio <= 0 || s.Container.Empty() {
		return Rect{}
	}
	width := s.Container.Width * s.Zoom
	if width/s.AspectRatio > s.Container.Height {
		width = s.Container.Height * s.AspectRatio
	}
	height := width / s.AspectRatio
	left := clamp(s.CenterX-s.Container.Left-width/2, 0, s.Container.Width-width)
	top := clamp(s.CenterY-s.Container.Top-height/2, 0, s.Container.Height-height)
	return Rect{Left: left, Top: top, Width: width, Height: height}
}
