package cli

import (
	"fmt"
	"strings"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
)

// CommandContext carries the pieces every command needs.
type CommandContext struct {
	Settings *models.Settings
}

// NewCommandContext validates the project and loads settings.
func NewCommandContext() (*CommandContext, error) {
	if !files.ProjectExists() {
		return nil, fmt.Errorf("no %s directory found. Run 'feria init' first", files.FeriaDir)
	}
	settings, err := files.ReadSettings()
	if err != nil {
		PrintWarning("failed to read settings, using defaults: %v", err)
		settings = models.DefaultSettings()
	}
	return &CommandContext{Settings: settings}, nil
}

// ResolveListing finds a listing by exact file name, name without extension,
// or unique title prefix.
func ResolveListing(ref string) (*models.Listing, error) {
	paths, err := files.ListListings()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if path == ref || strings.TrimSuffix(path, ".yaml") == ref {
			return files.ReadListing(path)
		}
	}

	var matches []*models.Listing
	lowered := strings.ToLower(ref)
	for _, path := range paths {
		listing, err := files.ReadListing(path)
		if err != nil {
			continue
		}
		if strings.HasPrefix(strings.ToLower(listing.Title), lowered) {
			matches = append(matches, listing)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no listing matches %q", ref)
	case 1:
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Path
	}
	return nil, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
}
