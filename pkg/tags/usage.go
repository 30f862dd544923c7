package tags

import (
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
)

// UsageStats counts how many listings carry a tag.
type UsageStats struct {
	ListingCount int
}

// CountTagUsage counts a tag's usage across all listings.
func CountTagUsage(tagName string) (*UsageStats, error) {
	stats := &UsageStats{}
	normalized := models.NormalizeTagName(tagName)

	paths, err := files.ListListings()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		listing, err := files.ReadListing(path)
		if err != nil {
			continue
		}
		for _, tag := range listing.Tags {
			if models.NormalizeTagName(tag) == normalized {
				stats.ListingCount++
				break
			}
		}
	}
	return stats, nil
}

// CountAllTags tallies usage for every tag that appears on any listing,
// registered or not.
func CountAllTags() (map[string]int, error) {
	paths, err := files.ListListings()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, path := range paths {
		listing, err := files.ReadListing(path)
		if err != nil {
			continue
		}
		for _, tag := range listing.Tags {
			counts[models.NormalizeTagName(tag)]++
		}
	}
	return counts, nil
}
