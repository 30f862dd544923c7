// Package search filters listings with a small query language: bare words
// match titles and description text, "tag:"-style fields narrow by metadata.
package search

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType names a filterable listing attribute.
type FieldType string

const (
	FieldTag      FieldType = "tag"
	FieldCurrency FieldType = "currency"
	FieldTitle    FieldType = "title"
	FieldUnder    FieldType = "under" // price ceiling
)

// Condition is a single field filter.
type Condition struct {
	Field FieldType
	Value string
	Price float64 // parsed value for FieldUnder
}

// Query is a parsed search query: every condition must match, and every
// free-text term must appear in the title or description.
type Query struct {
	Conditions []Condition
	Terms      []string
	Raw        string
}

// IsEmpty reports whether the query filters nothing.
func (q *Query) IsEmpty() bool {
	return len(q.Conditions) == 0 && len(q.Terms) == 0
}

// Parse parses a query string like `scarf tag:textiles under:50`.
func Parse(input string) (*Query, error) {
	query := &Query{Raw: input}
	for _, token := range strings.Fields(input) {
		field, value, ok := strings.Cut(token, ":")
		if !ok {
			query.Terms = append(query.Terms, strings.ToLower(token))
			continue
		}
		cond := Condition{Value: value}
		switch FieldType(strings.ToLower(field)) {
		case FieldTag:
			cond.Field = FieldTag
		case FieldCurrency:
			cond.Field = FieldCurrency
		case FieldTitle:
			cond.Field = FieldTitle
		case FieldUnder:
			cond.Field = FieldUnder
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid price in %q: %w", token, err)
			}
			cond.Price = price
		default:
			return nil, fmt.Errorf("unknown search field %q", field)
		}
		if value == "" {
			return nil, fmt.Errorf("search field %q has no value", field)
		}
		query.Conditions = append(query.Conditions, cond)
	}
	return query, nil
}
