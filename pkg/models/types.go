package models

import "time"

// Listing is one marketplace offer: metadata in YAML, the description in a
// separate Markdown file, images on disk next to it.
type Listing struct {
	Title        string   `yaml:"title"`
	Path         string   `yaml:"-"`
	Price        float64  `yaml:"price"`
	Currency     string   `yaml:"currency"`
	Description  string   `yaml:"description"`
	Image        string   `yaml:"image,omitempty"`
	CroppedImage string   `yaml:"cropped_image,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`

	Modified time.Time `yaml:"-"`
}

// Description is a listing's Markdown body as read from disk.
type Description struct {
	Path     string
	Content  string
	Modified time.Time
}
