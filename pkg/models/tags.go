package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// Tag-related errors
var (
	ErrEmptyTagName        = errors.New("tag name cannot be empty")
	ErrTagNameTooLong      = errors.New("tag name cannot exceed 50 characters")
	ErrInvalidTagCharacter = errors.New("tag name contains invalid characters")
)

// Tag labels listings for filtering; the registry stores display metadata.
type Tag struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// TagRegistry holds all tag metadata
type TagRegistry struct {
	Tags []Tag `yaml:"tags"`
}

// DefaultColorPalette provides a curated set of colors for tag badges
var DefaultColorPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#34495e", // dark gray
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#f1c40f", // yellow
	"#d35400", // pumpkin
}

// GetTagColor returns the registry color if set, otherwise a consistent
// color derived from the tag name.
func GetTagColor(tagName string, registryColor string) string {
	if registryColor != "" {
		return registryColor
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(tagName)))
	return DefaultColorPalette[int(h.Sum32())%len(DefaultColorPalette)]
}

// NormalizeTagName normalizes a tag name for consistency
func NormalizeTagName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateTagName checks if a tag name is valid
func ValidateTagName(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}
	if len(name) > 50 {
		return ErrTagNameTooLong
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == ' ') {
			return ErrInvalidTagCharacter
		}
	}
	return nil
}
