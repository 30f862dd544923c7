package cropper

// Measurer reports the bounding boxes of the display container and of the
// rendered (possibly letterboxed) image inside it, in one shared coordinate
// space. Hosts inject an implementation so the engine never touches the
// display layer directly.
type Measurer interface {
	Measure() (container, image Rect, err error)
}

// LoadFrom asks the measurer for fresh geometry and installs it. On a
// measurement error the engine keeps its prior state — the component simply
// stays "not yet loaded" (or keeps the last valid geometry) and the error is
// returned for logging.
func (e *Engine) LoadFrom(m Measurer) error {
	container, image, err := m.Measure()
	if err != nil {
		return err
	}
	e.OnImageLoaded(container, image)
	return nil
}
