// Package rasterize produces cropped image files from crop-selection
// geometry. It is the asynchronous collaborator behind pkg/cropper: requests
// are queued latest-wins (queue of size one), processed by a single worker,
// and answered on a results channel. Superseded requests are simply dropped —
// each request is idempotent and the newest geometry always wins.
package rasterize

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/feria/feria-cli/pkg/cropper"
)

// DefaultTimeout bounds a single rasterization. A stuck request delivers a
// timeout error instead of leaving the host's requesting flag raised forever.
const DefaultTimeout = 10 * time.Second

// Request describes one crop to rasterize. Container and Image are the
// measured boxes in their shared coordinate space; Selection is
// container-local, as produced by cropper.ComputeSelection.
type Request struct {
	ID             uuid.UUID
	SourcePath     string
	OutputPath     string
	Container      cropper.Rect
	Image          cropper.Rect
	Selection      cropper.Rect
	MaxOutputWidth int // when > 0, the result is downscaled to fit
}

// Result reports one finished (or failed) rasterization.
type Result struct {
	ID         uuid.UUID
	OutputPath string
	Width      int
	Height     int
	Err        error
}

// Service runs rasterizations on a single worker goroutine.
type Service struct {
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	pending *Request

	notify  chan struct{}
	results chan Result
}

// NewService creates a service. A zero timeout falls back to DefaultTimeout;
// a nil logger is replaced with a no-op one.
func NewService(timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		timeout: timeout,
		logger:  logger,
		notify:  make(chan struct{}, 1),
		results: make(chan Result, 1),
	}
}

// Results returns the channel finished rasterizations arrive on. Results for
// a given request are delivered at most once; superseded requests never
// produce one.
func (s *Service) Results() <-chan Result { return s.results }

// Submit queues a request, replacing any not-yet-started one. The assigned
// request ID is returned.
func (s *Service) Submit(req Request) uuid.UUID {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	s.mu.Lock()
	if s.pending != nil {
		s.logger.Debug("superseding pending rasterization",
			zap.String("dropped", s.pending.ID.String()),
			zap.String("replacement", req.ID.String()))
	}
	s.pending = &req
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
	return req.ID
}

// Run processes requests until ctx is cancelled. Call it on its own
// goroutine.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		}
		for {
			s.mu.Lock()
			req := s.pending
			s.pending = nil
			s.mu.Unlock()
			if req == nil {
				break
			}
			s.process(ctx, *req)
		}
	}
}

func (s *Service) process(parent context.Context, req Request) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	w, h, err := CropFile(ctx, req)
	if err != nil {
		s.logger.Warn("rasterization failed",
			zap.String("id", req.ID.String()),
			zap.String("source", req.SourcePath),
			zap.Error(err))
	}
	select {
	case s.results <- Result{ID: req.ID, OutputPath: req.OutputPath, Width: w, Height: h, Err: err}:
	case <-parent.Done():
	}
}

// CropFile decodes the source image, crops it to the request's selection and
// writes the result to the request's output path. It returns the output
// dimensions in pixels.
func CropFile(ctx context.Context, req Request) (int, int, error) {
	src, err := decodeImage(req.SourcePath)
	if err != nil {
		return 0, 0, err
	}
	out, err := Crop(ctx, src, req)
	if err != nil {
		return 0, 0, err
	}
	if err := encodeImage(req.OutputPath, out); err != nil {
		return 0, 0, err
	}
	b := out.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Crop maps the selection from container space into the source image's pixel
// space and extracts it, downscaling when the request caps the output width.
func Crop(ctx context.Context, src image.Image, req Request) (*image.RGBA, error) {
	pixels, err := SelectionPixels(src.Bounds(), req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outW, outH := pixels.Dx(), pixels.Dy()
	if req.MaxOutputWidth > 0 && outW > req.MaxOutputWidth {
		scale := float64(req.MaxOutputWidth) / float64(outW)
		outW = req.MaxOutputWidth
		outH = int(math.Round(float64(outH) * scale))
		if outH < 1 {
			outH = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == pixels.Dx() && outH == pixels.Dy() {
		draw.Draw(dst, dst.Bounds(), src, pixels.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, pixels, draw.Src, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dst, nil
}

// SelectionPixels converts the container-local selection rectangle into a
// pixel rectangle on the source image, clamped to its bounds.
func SelectionPixels(bounds image.Rectangle, req Request) (image.Rectangle, error) {
	if req.Image.Empty() {
		return image.Rectangle{}, fmt.Errorf("rasterize: image rect has no area")
	}
	if req.Selection.Empty() {
		return image.Rectangle{}, fmt.Errorf("rasterize: selection has no area")
	}

	scaleX := float64(bounds.Dx()) / req.Image.Width
	scaleY := float64(bounds.Dy()) / req.Image.Height

	// Selection is container-local; lift it into the shared space, then
	// re-base on the image origin.
	left := req.Container.Left + req.Selection.Left - req.Image.Left
	top := req.Container.Top + req.Selection.Top - req.Image.Top

	rect := image.Rect(
		bounds.Min.X+int(math.Round(left*scaleX)),
		bounds.Min.Y+int(math.Round(top*scaleY)),
		bounds.Min.X+int(math.Round((left+req.Selection.Width)*scaleX)),
		bounds.Min.Y+int(math.Round((top+req.Selection.Height)*scaleY)),
	).Intersect(bounds)

	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("rasterize: selection lies outside the image")
	}
	return rect, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func encodeImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
