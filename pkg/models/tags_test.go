package models

import (
	"errors"
	"testing"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normal", "ceramics", "ceramics"},
		{"uppercase", "Ceramics", "ceramics"},
		{"spaces to hyphens", "hand made", "hand-made"},
		{"trimmed", "  wool  ", "wool"},
		{"strips punctuation", "wool!", "wool"},
		{"keeps digits", "2024-fair", "2024-fair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTagName(tt.input); got != tt.want {
				t.Errorf("NormalizeTagName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "ceramics", nil},
		{"valid with space", "hand made", nil},
		{"empty", "", ErrEmptyTagName},
		{"too long", string(make([]byte, 51)), ErrTagNameTooLong},
		{"invalid characters", "wool!", ErrInvalidTagCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTagColor(t *testing.T) {
	if got := GetTagColor("anything", "#123456"); got != "#123456" {
		t.Errorf("registry color should win, got %q", got)
	}

	// Derived colors are stable and case-insensitive.
	a := GetTagColor("ceramics", "")
	b := GetTagColor("CERAMICS", "")
	if a != b {
		t.Errorf("derived color not stable across case: %q vs %q", a, b)
	}
	found := false
	for _, c := range DefaultColorPalette {
		if c == a {
			found = true
		}
	}
	if !found {
		t.Errorf("derived color %q not from the palette", a)
	}
}
