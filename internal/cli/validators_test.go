package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateListingName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "wool-scarf.yaml", false},
		{"valid without extension", "wool-scarf", false},
		{"with digits", "scarf-2024", false},
		{"empty", "", true},
		{"uppercase", "Wool-Scarf", true},
		{"spaces", "wool scarf", true},
		{"path separator", "dir/wool", true},
		{"backslash", "dir\\wool", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListingName(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.input, err)
			}
		})
	}
}

func TestNormalizeListingName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Wool Scarf", "wool-scarf"},
		{"trimmed", "  Clay Bowl  ", "clay-bowl"},
		{"punctuation stripped", "Grandma's Jam!", "grandmas-jam"},
		{"digits kept", "Fair 2024", "fair-2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeListingName(tt.input); got != tt.want {
				t.Errorf("NormalizeListingName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(good, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("hello"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := ValidateImageFile(good); err != nil {
		t.Errorf("valid image rejected: %v", err)
	}
	if err := ValidateImageFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file accepted")
	}
	if err := ValidateImageFile(dir); err == nil {
		t.Error("directory accepted")
	}
	if err := ValidateImageFile(textFile); err == nil {
		t.Error("unsupported extension accepted")
	}
}

func TestValidateAspectRatio(t *testing.T) {
	if err := ValidateAspectRatio("4:3"); err != nil {
		t.Errorf("4:3 rejected: %v", err)
	}
	if err := ValidateAspectRatio("nope"); err == nil {
		t.Error("malformed ratio accepted")
	}
}
