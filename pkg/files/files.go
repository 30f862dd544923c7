// Package files owns the on-disk project layout: a .feria directory holding
// listing metadata (YAML), description bodies (Markdown), source images and
// cropped output.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/feria/feria-cli/pkg/models"
)

const (
	FeriaDir        = ".feria"
	ListingsDir     = "listings"
	DescriptionsDir = "descriptions"
	ImagesDir       = "images"
	CropsDir        = "crops"
	SettingsFile    = "settings.yaml"
	TagsFile        = "tags.yaml"
)

// InitProjectStructure creates the .feria folder layout in the current
// directory.
func InitProjectStructure() error {
	dirs := []string{
		FeriaDir,
		filepath.Join(FeriaDir, ListingsDir),
		filepath.Join(FeriaDir, DescriptionsDir),
		filepath.Join(FeriaDir, ImagesDir),
		filepath.Join(FeriaDir, CropsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ProjectExists reports whether the current directory holds a project.
func ProjectExists() bool {
	info, err := os.Stat(FeriaDir)
	return err == nil && info.IsDir()
}

// ReadListing loads one listing by its path relative to the listings
// directory (for example "wool-scarf.yaml").
func ReadListing(path string) (*models.Listing, error) {
	absPath := filepath.Join(FeriaDir, ListingsDir, path)

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing %s: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat listing %s: %w", path, err)
	}

	var listing models.Listing
	if err := yaml.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse listing %s: %w", path, err)
	}
	listing.Path = path
	listing.Modified = info.ModTime()
	return &listing, nil
}

// WriteListing stores a listing under its Path.
func WriteListing(listing *models.Listing) error {
	if listing == nil || listing.Path == "" {
		return fmt.Errorf("listing has no path")
	}
	data, err := yaml.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing %s: %w", listing.Path, err)
	}
	absPath := filepath.Join(FeriaDir, ListingsDir, listing.Path)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create listing directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write listing %s: %w", listing.Path, err)
	}
	return nil
}

// ListListings returns the relative paths of all listings, sorted.
func ListListings() ([]string, error) {
	dir := filepath.Join(FeriaDir, ListingsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		paths = append(paths, entry.Name())
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadDescription loads a listing's Markdown body by its path relative to
// the descriptions directory.
func ReadDescription(path string) (*models.Description, error) {
	absPath := filepath.Join(FeriaDir, DescriptionsDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read description %s: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat description %s: %w", path, err)
	}
	return &models.Description{
		Path:     path,
		Content:  string(content),
		Modified: info.ModTime(),
	}, nil
}

// WriteDescription stores a Markdown body at the given relative path.
func WriteDescription(path string, content string) error {
	absPath := filepath.Join(FeriaDir, DescriptionsDir, path)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create description directory: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write description %s: %w", path, err)
	}
	return nil
}

// ImagePath resolves an image name to its path inside the project.
func ImagePath(name string) string {
	return filepath.Join(FeriaDir, ImagesDir, name)
}

// CropPath resolves a cropped-image name to its path inside the project.
func CropPath(name string) string {
	return filepath.Join(FeriaDir, CropsDir, name)
}

// DeleteListing removes a listing file. The description and images are left
// alone; they may be shared.
func DeleteListing(path string) error {
	absPath := filepath.Join(FeriaDir, ListingsDir, path)
	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", path, err)
	}
	return nil
}
