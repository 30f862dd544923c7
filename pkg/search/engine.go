package search

import (
	"sort"
	"strings"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
)

// Result is one matching listing.
type Result struct {
	Listing     *models.Listing
	Description string
}

// Engine indexes the project's listings for querying. Build it once, refresh
// after writes.
type Engine struct {
	entries []Result
}

// NewEngine creates an empty engine; call BuildIndex before searching.
func NewEngine() *Engine {
	return &Engine{}
}

// BuildIndex loads every listing and its description into memory.
func (e *Engine) BuildIndex() error {
	paths, err := files.ListListings()
	if err != nil {
		return err
	}
	entries := make([]Result, 0, len(paths))
	for _, path := range paths {
		listing, err := files.ReadListing(path)
		if err != nil {
			return err
		}
		entry := Result{Listing: listing}
		if listing.Description != "" {
			if desc, err := files.ReadDescription(listing.Description); err == nil {
				entry.Description = desc.Content
			}
			// A listing with a dangling description reference still shows
			// up in results; only its body is unsearchable.
		}
		entries = append(entries, entry)
	}
	e.entries = entries
	return nil
}

// Search parses and runs a query, returning matches sorted by title.
func (e *Engine) Search(input string) ([]Result, error) {
	query, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return e.Run(query), nil
}

// Run filters the index with an already-parsed query.
func (e *Engine) Run(query *Query) []Result {
	var results []Result
	for _, entry := range e.entries {
		if matches(query, entry) {
			results = append(results, entry)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Listing.Title < results[j].Listing.Title
	})
	return results
}

func matches(query *Query, entry Result) bool {
	for _, cond := range query.Conditions {
		if !matchCondition(cond, entry.Listing) {
			return false
		}
	}
	haystack := strings.ToLower(entry.Listing.Title + " " + entry.Description)
	for _, term := range query.Terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func matchCondition(cond Condition, listing *models.Listing) bool {
	switch cond.Field {
	case FieldTag:
		normalized := models.NormalizeTagName(cond.Value)
		for _, tag := range listing.Tags {
			if models.NormalizeTagName(tag) == normalized {
				return true
			}
		}
		return false
	case FieldCurrency:
		return strings.EqualFold(listing.Currency, cond.Value)
	case FieldTitle:
		return strings.Contains(strings.ToLower(listing.Title), strings.ToLower(cond.Value))
	case FieldUnder:
		return listing.Price <= cond.Price
	}
	return false
}
