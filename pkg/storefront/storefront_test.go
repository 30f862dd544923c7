package storefront

import (
	"strings"
	"testing"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/tui/testhelpers"
)

func TestComposeEmptyProjectFails(t *testing.T) {
	testhelpers.WithTestProject(t)

	if _, _, err := Compose("Market"); err == nil {
		t.Error("expected error with no listings")
	}
}

func TestComposeGroupsByCurrency(t *testing.T) {
	testhelpers.WithTestProject(t)

	testhelpers.NewListing("Wool Scarf").WithPrice(45, "USD").Create(t)
	testhelpers.NewListing("Alpaca Blanket").WithPrice(200, "BOB").Create(t)
	testhelpers.NewListing("Clay Bowl").WithPrice(12.5, "USD").Create(t)

	doc, diags, err := Compose("Saturday Market")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if diags.HasProblems() {
		t.Errorf("unexpected problems: %v", diags.Problems)
	}

	if !strings.HasPrefix(doc, "# Saturday Market\n\n") {
		t.Errorf("missing title heading:\n%s", doc)
	}

	// Currencies sort alphabetically, titles within each group too.
	order := []string{"## Alpaca Blanket", "## Clay Bowl", "## Wool Scarf"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(doc, heading)
		if idx < 0 {
			t.Fatalf("missing %q in:\n%s", heading, doc)
		}
		if idx < last {
			t.Errorf("%q out of order in:\n%s", heading, doc)
		}
		last = idx
	}

	if !strings.Contains(doc, "**12.50 USD**") {
		t.Errorf("price not formatted:\n%s", doc)
	}

	// Separator sits between listings in the same group, not across groups.
	if got := strings.Count(doc, "\n---\n"); got != 1 {
		t.Errorf("separator count = %d, want 1:\n%s", got, doc)
	}
}

func TestComposeIncludesBodyTagsAndImage(t *testing.T) {
	testhelpers.WithTestProject(t)

	testhelpers.NewListing("Wool Scarf").
		WithTags("textiles", "winter").
		WithImage("scarf.jpg").
		WithDescription("Hand woven from **local** wool.\n").
		Create(t)

	doc, _, err := Compose("Market")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(doc, "Tags: textiles, winter") {
		t.Errorf("tags missing:\n%s", doc)
	}
	if !strings.Contains(doc, "![Wool Scarf](scarf.jpg)") {
		t.Errorf("image missing:\n%s", doc)
	}
	if !strings.Contains(doc, "Hand woven from **local** wool.") {
		t.Errorf("description body missing:\n%s", doc)
	}
}

func TestComposePrefersCroppedImage(t *testing.T) {
	testhelpers.WithTestProject(t)

	listing := testhelpers.NewListing("Clay Bowl").WithImage("bowl.jpg").Build()
	listing.CroppedImage = "bowl-crop.png"
	if err := files.WriteListing(&listing); err != nil {
		t.Fatalf("write listing: %v", err)
	}

	doc, _, err := Compose("Market")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(doc, "![Clay Bowl](bowl-crop.png)") {
		t.Errorf("cropped image not used:\n%s", doc)
	}
	if strings.Contains(doc, "bowl.jpg") {
		t.Errorf("source image should be superseded:\n%s", doc)
	}
}

func TestComposeCollectsProblemsWithoutBlocking(t *testing.T) {
	testhelpers.WithTestProject(t)

	testhelpers.NewListing("Odd Doc").
		WithDescription("intro\n\n```\ncode here\n```\n").
		Create(t)

	doc, diags, err := Compose("Market")
	if err != nil {
		t.Fatalf("Compose should not fail on conversion problems: %v", err)
	}
	if !diags.HasProblems() {
		t.Error("expected conversion problems to be reported")
	}
	if !strings.Contains(doc, "## Odd Doc") {
		t.Errorf("listing dropped from document:\n%s", doc)
	}
}
