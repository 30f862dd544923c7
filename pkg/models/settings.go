package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings represents the application configuration
type Settings struct {
	Output  OutputSettings  `yaml:"output"`
	Editor  EditorSettings  `yaml:"editor"`
	Crop    CropSettings    `yaml:"crop"`
	Logging LoggingSettings `yaml:"logging"`
}

// OutputSettings controls storefront composition output
type OutputSettings struct {
	StorefrontFile string `yaml:"storefront_file"`
	ExportPath     string `yaml:"export_path"`
}

// EditorSettings controls the description editor
type EditorSettings struct {
	ShowPreview  bool   `yaml:"show_preview"`
	PreviewStyle string `yaml:"preview_style"` // "auto", "dark" or "light"
}

// CropSettings controls image cropping
type CropSettings struct {
	AspectRatio    string `yaml:"aspect_ratio"` // "W:H", e.g. "1:1" or "4:3"
	MaxOutputWidth int    `yaml:"max_output_width"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoggingSettings controls the diagnostics log
type LoggingSettings struct {
	Debug bool `yaml:"debug"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			StorefrontFile: "STOREFRONT.md",
			ExportPath:     "./",
		},
		Editor: EditorSettings{
			ShowPreview:  true,
			PreviewStyle: "auto",
		},
		Crop: CropSettings{
			AspectRatio:    "1:1",
			MaxOutputWidth: 1024,
			TimeoutSeconds: 10,
		},
	}
}

// AspectRatioValue parses the configured "W:H" ratio into a float, falling
// back to 1 when the setting is malformed.
func (c CropSettings) AspectRatioValue() float64 {
	ratio, err := ParseAspectRatio(c.AspectRatio)
	if err != nil {
		return 1
	}
	return ratio
}

// ParseAspectRatio parses a "W:H" string into width divided by height.
func ParseAspectRatio(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("aspect ratio %q must look like W:H", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid aspect ratio width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid aspect ratio height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("aspect ratio %q must be positive", s)
	}
	return w / h, nil
}
