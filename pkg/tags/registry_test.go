package tags

import (
	"testing"

	"github.com/feria/feria-cli/pkg/models"
	"github.com/feria/feria-cli/pkg/tui/testhelpers"
)

func TestRegistryAddNormalizesAndUpdates(t *testing.T) {
	testhelpers.WithTestProject(t)

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if err := registry.Add(models.Tag{Name: "Hand Made", Color: "#e74c3c"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	tag, ok := registry.Lookup("hand made")
	if !ok {
		t.Fatal("added tag not found")
	}
	if tag.Name != "hand-made" {
		t.Errorf("Name = %q, want normalized %q", tag.Name, "hand-made")
	}

	// Re-adding updates metadata in place.
	if err := registry.Add(models.Tag{Name: "hand-made", Color: "#3498db"}); err != nil {
		t.Fatalf("Add update: %v", err)
	}
	all := registry.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 tag after update, got %d", len(all))
	}
	if all[0].Color != "#3498db" {
		t.Errorf("Color = %q, want updated %q", all[0].Color, "#3498db")
	}
}

func TestRegistryAddRejectsInvalidName(t *testing.T) {
	testhelpers.WithTestProject(t)

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := registry.Add(models.Tag{Name: ""}); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := registry.Add(models.Tag{Name: "wool!"}); err == nil {
		t.Error("invalid characters should be rejected")
	}
}

func TestRegistryRemove(t *testing.T) {
	testhelpers.WithTestProject(t)

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	registry.Add(models.Tag{Name: "ceramics"})
	registry.Add(models.Tag{Name: "textiles"})

	registry.Remove("Ceramics")
	if _, ok := registry.Lookup("ceramics"); ok {
		t.Error("removed tag still present")
	}
	if _, ok := registry.Lookup("textiles"); !ok {
		t.Error("unrelated tag went missing")
	}

	// Removing an absent tag is a no-op.
	registry.Remove("jewelry")
}

func TestRegistryAllSorted(t *testing.T) {
	testhelpers.WithTestProject(t)

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	for _, name := range []string{"winter", "ceramics", "textiles"} {
		if err := registry.Add(models.Tag{Name: name}); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
	}
	all := registry.All()
	want := []string{"ceramics", "textiles", "winter"}
	for i, tag := range all {
		if tag.Name != want[i] {
			t.Fatalf("All() order = %v, want %v", all, want)
		}
	}
}

func TestRegistrySaveRoundTrip(t *testing.T) {
	testhelpers.WithTestProject(t)

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	registry.Add(models.Tag{Name: "ceramics", Color: "#2ecc71"})
	if err := registry.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry reload: %v", err)
	}
	tag, ok := reloaded.Lookup("ceramics")
	if !ok || tag.Color != "#2ecc71" {
		t.Errorf("reloaded tag = %+v, ok=%v", tag, ok)
	}
}

func TestCountTagUsage(t *testing.T) {
	testhelpers.WithTestProject(t)

	testhelpers.NewListing("Wool Scarf").WithTags("textiles", "winter").Create(t)
	testhelpers.NewListing("Alpaca Blanket").WithTags("Textiles").Create(t)
	testhelpers.NewListing("Clay Bowl").WithTags("ceramics").Create(t)

	stats, err := CountTagUsage("textiles")
	if err != nil {
		t.Fatalf("CountTagUsage: %v", err)
	}
	if stats.ListingCount != 2 {
		t.Errorf("ListingCount = %d, want 2", stats.ListingCount)
	}

	stats, err = CountTagUsage("jewelry")
	if err != nil {
		t.Fatalf("CountTagUsage: %v", err)
	}
	if stats.ListingCount != 0 {
		t.Errorf("unused tag count = %d, want 0", stats.ListingCount)
	}
}

func TestCountAllTags(t *testing.T) {
	testhelpers.WithTestProject(t)

	testhelpers.NewListing("Wool Scarf").WithTags("textiles", "winter").Create(t)
	testhelpers.NewListing("Alpaca Blanket").WithTags("Textiles").Create(t)

	counts, err := CountAllTags()
	if err != nil {
		t.Fatalf("CountAllTags: %v", err)
	}
	if counts["textiles"] != 2 {
		t.Errorf("textiles = %d, want 2", counts["textiles"])
	}
	if counts["winter"] != 1 {
		t.Errorf("winter = %d, want 1", counts["winter"])
	}
	if len(counts) != 2 {
		t.Errorf("counts = %v, want 2 distinct tags", counts)
	}
}
