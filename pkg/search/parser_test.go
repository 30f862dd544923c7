package search

import (
	"reflect"
	"testing"
)

func TestParseQueries(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantConditions []Condition
		wantTerms      []string
		wantErr        bool
	}{
		{
			name:  "empty query",
			input: "",
		},
		{
			name:      "bare terms lowered",
			input:     "Wool Scarf",
			wantTerms: []string{"wool", "scarf"},
		},
		{
			name:           "tag condition",
			input:          "tag:textiles",
			wantConditions: []Condition{{Field: FieldTag, Value: "textiles"}},
		},
		{
			name:           "under condition parses price",
			input:          "under:49.90",
			wantConditions: []Condition{{Field: FieldUnder, Value: "49.90", Price: 49.90}},
		},
		{
			name:  "mixed conditions and terms",
			input: "scarf tag:textiles currency:USD",
			wantConditions: []Condition{
				{Field: FieldTag, Value: "textiles"},
				{Field: FieldCurrency, Value: "USD"},
			},
			wantTerms: []string{"scarf"},
		},
		{
			name:           "field name case insensitive",
			input:          "TAG:ceramics",
			wantConditions: []Condition{{Field: FieldTag, Value: "ceramics"}},
		},
		{
			name:    "unknown field",
			input:   "color:red",
			wantErr: true,
		},
		{
			name:    "invalid price",
			input:   "under:cheap",
			wantErr: true,
		},
		{
			name:    "empty value",
			input:   "tag:",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(query.Conditions, tt.wantConditions) {
				t.Errorf("Conditions = %+v, want %+v", query.Conditions, tt.wantConditions)
			}
			if !reflect.DeepEqual(query.Terms, tt.wantTerms) {
				t.Errorf("Terms = %v, want %v", query.Terms, tt.wantTerms)
			}
		})
	}
}

func TestQueryIsEmpty(t *testing.T) {
	empty, err := Parse("   ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !empty.IsEmpty() {
		t.Error("whitespace query should be empty")
	}
	full, err := Parse("scarf")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if full.IsEmpty() {
		t.Error("query with terms should not be empty")
	}
}
