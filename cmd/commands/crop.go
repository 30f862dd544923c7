package commands

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/cropper"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
	"github.com/feria/feria-cli/pkg/rasterize"
)

var (
	cropAspect  string
	cropZoom    float64
	cropOffsetX float64
	cropOffsetY float64
	cropPreview bool
)

// NewCropCommand creates the crop command
func NewCropCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop <listing>",
		Short: "Crop a listing's image without the TUI",
		Long: `Crop a listing's source image headlessly.

The selection starts centered at three quarters of the maximum zoom, the
same default the interactive cropper uses. Zoom and offset flags adjust it
from there; the selection never leaves the image.

Examples:
  # Default centered crop at the project aspect ratio
  feria crop wool-scarf

  # Tighter square crop nudged right
  feria crop wool-scarf --aspect 1:1 --zoom 0.4 --offset-x 120

  # Inspect before committing
  feria crop wool-scarf --preview`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runCrop,
	}

	cmd.Flags().StringVar(&cropAspect, "aspect", "", "Selection aspect ratio as W:H (default from settings)")
	cmd.Flags().Float64Var(&cropZoom, "zoom", 0, "Zoom multiplier on image width (default 0.75 of max)")
	cmd.Flags().Float64Var(&cropOffsetX, "offset-x", 0, "Horizontal selection offset from center, in pixels")
	cmd.Flags().Float64Var(&cropOffsetY, "offset-y", 0, "Vertical selection offset from center, in pixels")
	cmd.Flags().BoolVar(&cropPreview, "preview", false, "Write an overlay preview instead of cropping")
	return cmd
}

func runCrop(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	listing, err := cli.ResolveListing(args[0])
	if err != nil {
		return err
	}
	if listing.Image == "" {
		return fmt.Errorf("listing %s has no image", listing.Path)
	}

	aspectSpec := ctx.Settings.Crop.AspectRatio
	if cropAspect != "" {
		aspectSpec = cropAspect
	}
	aspect, err := models.ParseAspectRatio(aspectSpec)
	if err != nil {
		return err
	}

	sourcePath := files.ImagePath(listing.Image)
	width, height, err := imageSize(sourcePath)
	if err != nil {
		return err
	}

	// Headless crops treat the image itself as the container, so flag values
	// are in source pixels.
	box := cropper.Rect{Width: float64(width), Height: float64(height)}
	engine := cropper.New(aspect)
	engine.OnImageLoaded(box, box)
	if cropZoom > 0 {
		engine.OnSliderChange(cropZoom)
	}
	if cropOffsetX != 0 || cropOffsetY != 0 {
		engine.MoveBy(cropOffsetX, cropOffsetY)
	}
	state := engine.State()

	req := rasterize.Request{
		SourcePath:     sourcePath,
		Container:      state.Container,
		Image:          state.Image,
		Selection:      engine.Selection(),
		MaxOutputWidth: ctx.Settings.Crop.MaxOutputWidth,
	}

	timeout := time.Duration(ctx.Settings.Crop.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = rasterize.DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cropPreview {
		name := cropName(listing.Image, "-preview")
		// previews are always PNG
		if dot := strings.LastIndex(name, "."); dot > 0 {
			name = name[:dot] + ".png"
		}
		previewPath := files.CropPath(name)
		if err := rasterize.WritePreview(runCtx, previewPath, req); err != nil {
			return err
		}
		cli.PrintSuccess("wrote preview %s", previewPath)
		return nil
	}

	cropped := cropName(listing.Image, "-crop")
	req.OutputPath = files.CropPath(cropped)
	w, h, err := rasterize.CropFile(runCtx, req)
	if err != nil {
		return err
	}

	listing.CroppedImage = cropped
	if err := files.WriteListing(listing); err != nil {
		return err
	}
	cli.PrintSuccess("cropped %s to %dx%d (%s)", listing.Image, w, h, req.OutputPath)
	return nil
}

func cropName(imageName, suffix string) string {
	if dot := strings.LastIndex(imageName, "."); dot > 0 {
		return imageName[:dot] + suffix + imageName[dot:]
	}
	return imageName + suffix
}

func imageSize(path string) (int, int, error) {
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
