// Package tags manages the project's tag registry and tracks how tags are
// used across listings.
package tags

import (
	"fmt"
	"sort"
	"sync"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
)

// Registry manages the tag registry for a project.
type Registry struct {
	mu       sync.RWMutex
	registry *models.TagRegistry
}

// NewRegistry loads the registry from disk; a missing file yields an empty
// registry.
func NewRegistry() (*Registry, error) {
	registry, err := files.ReadTagRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load tag registry: %w", err)
	}
	return &Registry{registry: registry}, nil
}

// Save writes the registry to disk.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return files.WriteTagRegistry(r.registry)
}

// Add registers a tag, normalizing its name. Re-adding an existing tag
// updates its metadata.
func (r *Registry) Add(tag models.Tag) error {
	if err := models.ValidateTagName(tag.Name); err != nil {
		return err
	}
	tag.Name = models.NormalizeTagName(tag.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.registry.Tags {
		if existing.Name == tag.Name {
			r.registry.Tags[i] = tag
			return nil
		}
	}
	r.registry.Tags = append(r.registry.Tags, tag)
	return nil
}

// Remove deletes a tag from the registry. Listings keep their tag strings;
// only the metadata goes away.
func (r *Registry) Remove(name string) {
	normalized := models.NormalizeTagName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tag := range r.registry.Tags {
		if tag.Name == normalized {
			r.registry.Tags = append(r.registry.Tags[:i], r.registry.Tags[i+1:]...)
			return
		}
	}
}

// Lookup returns a tag's metadata, if registered.
func (r *Registry) Lookup(name string) (models.Tag, bool) {
	normalized := models.NormalizeTagName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tag := range r.registry.Tags {
		if tag.Name == normalized {
			return tag, true
		}
	}
	return models.Tag{}, false
}

// All returns the registered tags sorted by name.
func (r *Registry) All() []models.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Tag, len(r.registry.Tags))
	copy(out, r.registry.Tags)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
