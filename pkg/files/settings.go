package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/feria/feria-cli/pkg/models"
)

// ReadSettings loads settings.yaml, falling back to defaults when the file
// does not exist yet.
func ReadSettings() (*models.Settings, error) {
	absPath := filepath.Join(FeriaDir, SettingsFile)
	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// WriteSettings stores the settings file.
func WriteSettings(settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	absPath := filepath.Join(FeriaDir, SettingsFile)
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
