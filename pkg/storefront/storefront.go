// Package storefront composes the project's listings into a single Markdown
// document ready for publishing.
package storefront

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/models"
)

// listingWithBody pairs a listing with its loaded description.
type listingWithBody struct {
	listing *models.Listing
	body    string
}

// Compose renders every listing into one storefront document, grouped by
// currency and sorted by title within each group. Descriptions are run
// through the converter so documents with conversion problems surface them;
// problems do not block composition.
func Compose(title string) (string, *markdown.Diagnostics, error) {
	paths, err := files.ListListings()
	if err != nil {
		return "", nil, err
	}
	if len(paths) == 0 {
		return "", nil, fmt.Errorf("no listings to compose")
	}

	currencyGroups := make(map[string][]listingWithBody)
	currencyOrder := []string{}
	allDiags := &markdown.Diagnostics{}

	for _, path := range paths {
		listing, err := files.ReadListing(path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load listing %s: %w", path, err)
		}
		body := ""
		if listing.Description != "" {
			desc, err := files.ReadDescription(listing.Description)
			if err != nil {
				return "", nil, fmt.Errorf("failed to load description for %s: %w", path, err)
			}
			body = strings.TrimSpace(desc.Content)
			_, diags := markdown.Parse(desc.Content)
			if diags.HasProblems() {
				allDiags.Problems = append(allDiags.Problems, diags.Problems...)
			}
		}
		if _, seen := currencyGroups[listing.Currency]; !seen {
			currencyOrder = append(currencyOrder, listing.Currency)
		}
		currencyGroups[listing.Currency] = append(currencyGroups[listing.Currency], listingWithBody{listing, body})
	}
	sort.Strings(currencyOrder)

	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", title))

	for _, currency := range currencyOrder {
		group := currencyGroups[currency]
		sort.Slice(group, func(i, j int) bool {
			return group[i].listing.Title < group[j].listing.Title
		})

		for i, entry := range group {
			writeListing(&output, entry)
			if i < len(group)-1 {
				output.WriteString("\n---\n\n")
			}
		}
		output.WriteString("\n")
	}

	return output.String(), allDiags, nil
}

func writeListing(output *strings.Builder, entry listingWithBody) {
	l := entry.listing
	output.WriteString(fmt.Sprintf("## %s\n\n", l.Title))
	output.WriteString(fmt.Sprintf("**%.2f %s**\n\n", l.Price, l.Currency))
	if len(l.Tags) > 0 {
		output.WriteString(fmt.Sprintf("Tags: %s\n\n", strings.Join(l.Tags, ", ")))
	}
	if l.CroppedImage != "" {
		output.WriteString(fmt.Sprintf("![%s](%s)\n\n", l.Title, l.CroppedImage))
	} else if l.Image != "" {
		output.WriteString(fmt.Sprintf("![%s](%s)\n\n", l.Title, l.Image))
	}
	if entry.body != "" {
		output.WriteString(entry.body)
		output.WriteString("\n")
	}
}
