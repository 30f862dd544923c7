package testhelpers

import (
	"strings"
	"testing"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
)

// ListingBuilder assembles test listings with sensible defaults.
type ListingBuilder struct {
	listing     models.Listing
	description string
}

// NewListing starts a builder for a listing with the given title.
func NewListing(title string) *ListingBuilder {
	name := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return &ListingBuilder{
		listing: models.Listing{
			Title:    title,
			Path:     name + ".yaml",
			Price:    10,
			Currency: "USD",
		},
	}
}

// WithPrice sets the price and currency.
func (b *ListingBuilder) WithPrice(price float64, currency string) *ListingBuilder {
	b.listing.Price = price
	b.listing.Currency = currency
	return b
}

// WithTags sets the tags.
func (b *ListingBuilder) WithTags(tags ...string) *ListingBuilder {
	b.listing.Tags = tags
	return b
}

// WithImage sets the source image name.
func (b *ListingBuilder) WithImage(name string) *ListingBuilder {
	b.listing.Image = name
	return b
}

// WithDescription attaches a Markdown body, written on Create.
func (b *ListingBuilder) WithDescription(markdown string) *ListingBuilder {
	b.description = markdown
	return b
}

// Build returns the listing without touching the filesystem.
func (b *ListingBuilder) Build() models.Listing {
	return b.listing
}

// Create writes the listing (and its description, if any) into the current
// test project and returns it.
func (b *ListingBuilder) Create(t *testing.T) *models.Listing {
	t.Helper()

	if b.description != "" {
		descPath := strings.TrimSuffix(b.listing.Path, ".yaml") + ".md"
		if err := files.WriteDescription(descPath, b.description); err != nil {
			t.Fatalf("failed to write description: %v", err)
		}
		b.listing.Description = descPath
	}
	if err := files.WriteListing(&b.listing); err != nil {
		t.Fatalf("failed to write listing: %v", err)
	}
	return &b.listing
}
