package files

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/feria/feria-cli/pkg/models"
)

// withProject runs the test in a temporary, initialized project directory.
func withProject(t *testing.T) {
	t.Helper()
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
	if err := InitProjectStructure(); err != nil {
		t.Fatalf("init project: %v", err)
	}
}

func TestInitProjectStructure(t *testing.T) {
	withProject(t)

	if !ProjectExists() {
		t.Fatal("ProjectExists should be true after init")
	}
	for _, dir := range []string{ListingsDir, DescriptionsDir, ImagesDir, CropsDir} {
		info, err := os.Stat(filepath.Join(FeriaDir, dir))
		if err != nil {
			t.Errorf("missing %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestProjectExistsFalseOutsideProject(t *testing.T) {
	original, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(original)

	if ProjectExists() {
		t.Error("ProjectExists should be false in an empty directory")
	}
}

func TestListingRoundTrip(t *testing.T) {
	withProject(t)

	listing := &models.Listing{
		Title:       "Wool scarf",
		Path:        "wool-scarf.yaml",
		Price:       45.50,
		Currency:    "USD",
		Description: "wool-scarf.md",
		Image:       "wool-scarf.jpg",
		Tags:        []string{"textiles", "winter"},
	}
	if err := WriteListing(listing); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}

	got, err := ReadListing("wool-scarf.yaml")
	if err != nil {
		t.Fatalf("ReadListing: %v", err)
	}
	if got.Title != listing.Title || got.Price != listing.Price ||
		got.Currency != listing.Currency || got.Description != listing.Description {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, listing.Tags) {
		t.Errorf("tags = %v, want %v", got.Tags, listing.Tags)
	}
	if got.Path != "wool-scarf.yaml" {
		t.Errorf("Path = %q, want the relative path", got.Path)
	}
	if got.Modified.IsZero() {
		t.Error("Modified should be populated from the file")
	}
}

func TestWriteListingRequiresPath(t *testing.T) {
	withProject(t)
	if err := WriteListing(&models.Listing{Title: "No path"}); err == nil {
		t.Error("expected error for listing without a path")
	}
	if err := WriteListing(nil); err == nil {
		t.Error("expected error for nil listing")
	}
}

func TestListListingsSortedAndFiltered(t *testing.T) {
	withProject(t)

	for _, name := range []string{"zebra.yaml", "apple.yaml", "mango.yaml"} {
		if err := WriteListing(&models.Listing{Title: name, Path: name}); err != nil {
			t.Fatalf("WriteListing(%s): %v", name, err)
		}
	}
	// Non-YAML files are ignored.
	if err := os.WriteFile(filepath.Join(FeriaDir, ListingsDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	paths, err := ListListings()
	if err != nil {
		t.Fatalf("ListListings: %v", err)
	}
	want := []string{"apple.yaml", "mango.yaml", "zebra.yaml"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("ListListings = %v, want %v", paths, want)
	}
}

func TestDescriptionRoundTrip(t *testing.T) {
	withProject(t)

	content := "# Wool scarf\n\nHand woven.\n"
	if err := WriteDescription("wool-scarf.md", content); err != nil {
		t.Fatalf("WriteDescription: %v", err)
	}
	desc, err := ReadDescription("wool-scarf.md")
	if err != nil {
		t.Fatalf("ReadDescription: %v", err)
	}
	if desc.Content != content {
		t.Errorf("Content = %q, want %q", desc.Content, content)
	}
	if desc.Path != "wool-scarf.md" {
		t.Errorf("Path = %q", desc.Path)
	}
}

func TestDeleteListing(t *testing.T) {
	withProject(t)

	if err := WriteListing(&models.Listing{Title: "Bye", Path: "bye.yaml"}); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}
	if err := DeleteListing("bye.yaml"); err != nil {
		t.Fatalf("DeleteListing: %v", err)
	}
	if _, err := ReadListing("bye.yaml"); err == nil {
		t.Error("listing should be gone")
	}
	if err := DeleteListing("bye.yaml"); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestImageAndCropPaths(t *testing.T) {
	if got := ImagePath("photo.jpg"); got != filepath.Join(FeriaDir, ImagesDir, "photo.jpg") {
		t.Errorf("ImagePath = %q", got)
	}
	if got := CropPath("photo-crop.jpg"); got != filepath.Join(FeriaDir, CropsDir, "photo-crop.jpg") {
		t.Errorf("CropPath = %q", got)
	}
}
