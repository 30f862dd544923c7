package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/feria/feria-cli/pkg/models"
)

// ReadTagRegistry loads tags.yaml; a missing file yields an empty registry.
func ReadTagRegistry() (*models.TagRegistry, error) {
	absPath := filepath.Join(FeriaDir, TagsFile)
	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return &models.TagRegistry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tag registry: %w", err)
	}

	var registry models.TagRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tag registry: %w", err)
	}
	return &registry, nil
}

// WriteTagRegistry stores tags.yaml.
func WriteTagRegistry(registry *models.TagRegistry) error {
	data, err := yaml.Marshal(registry)
	if err != nil {
		return fmt.Errorf("failed to marshal tag registry: %w", err)
	}
	absPath := filepath.Join(FeriaDir, TagsFile)
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write tag registry: %w", err)
	}
	return nil
}
