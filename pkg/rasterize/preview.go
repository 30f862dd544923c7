package rasterize

import (
	"context"
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// WritePreview renders the source image with the selection overlay — the
// area outside the selection dimmed and the selection outlined — and writes
// it as a PNG. Useful for checking a headless crop before committing to it.
func WritePreview(ctx context.Context, path string, req Request) error {
	src, err := decodeImage(req.SourcePath)
	if err != nil {
		return err
	}
	sel, err := SelectionPixels(src.Bounds(), req)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dc := gg.NewContextForImage(src)
	bounds := src.Bounds()
	dimOutside(dc, bounds, sel)

	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(2)
	dc.DrawRectangle(
		float64(sel.Min.X-bounds.Min.X), float64(sel.Min.Y-bounds.Min.Y),
		float64(sel.Dx()), float64(sel.Dy()),
	)
	dc.Stroke()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write preview %s: %w", path, err)
	}
	return nil
}

// dimOutside darkens the four bands around the selection.
func dimOutside(dc *gg.Context, bounds, sel image.Rectangle) {
	dc.SetRGBA(0, 0, 0, 0.45)
	w := float64(bounds.Dx())
	selTop := float64(sel.Min.Y - bounds.Min.Y)
	selBottom := float64(sel.Max.Y - bounds.Min.Y)
	selLeft := float64(sel.Min.X - bounds.Min.X)
	selRight := float64(sel.Max.X - bounds.Min.X)

	dc.DrawRectangle(0, 0, w, selTop)
	dc.DrawRectangle(0, selBottom, w, float64(bounds.Dy())-selBottom)
	dc.DrawRectangle(0, selTop, selLeft, selBottom-selTop)
	dc.DrawRectangle(selRight, selTop, w-selRight, selBottom-selTop)
	dc.Fill()
}
