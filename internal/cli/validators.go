package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/feria/feria-cli/pkg/models"
)

// ValidateListingName checks a listing file name: lowercase, hyphenated,
// no path separators.
func ValidateListingName(name string) error {
	if name == "" {
		return fmt.Errorf("listing name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("listing name cannot contain path separators: %s", name)
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.') {
			return fmt.Errorf("listing name %q may only contain lowercase letters, digits and hyphens", name)
		}
	}
	return nil
}

// NormalizeListingName slugifies a title into a listing file name.
func NormalizeListingName(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateImageFile checks that the path exists and has a supported image
// extension.
func ValidateImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image does not exist: %s", path)
		}
		return fmt.Errorf("error accessing image: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("image path is a directory: %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return nil
	}
	return fmt.Errorf("unsupported image format %s (must be .png, .jpg or .jpeg)", filepath.Ext(path))
}

// ValidateAspectRatio checks a "W:H" string.
func ValidateAspectRatio(s string) error {
	_, err := models.ParseAspectRatio(s)
	return err
}
