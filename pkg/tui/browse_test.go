package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/tui/testhelpers"
)

func seedBrowseListings(t *testing.T) {
	t.Helper()
	testhelpers.NewListing("Wool Scarf").WithTags("textiles").Create(t)
	testhelpers.NewListing("Clay Bowl").WithTags("ceramics").Create(t)
	testhelpers.NewListing("Alpaca Blanket").WithTags("textiles").Create(t)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseLoadsListingsSorted(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	if len(m.listings) != 3 {
		t.Fatalf("loaded %d listings, want 3", len(m.listings))
	}
	want := []string{"Alpaca Blanket", "Clay Bowl", "Wool Scarf"}
	for i, listing := range m.listings {
		if listing.Title != want[i] {
			t.Fatalf("order mismatch at %d: %q", i, listing.Title)
		}
	}

	view := m.View()
	testhelpers.AssertContains(t, view, "Wool Scarf")
	testhelpers.AssertContains(t, view, "textiles")
}

func TestBrowseCursorMovement(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	m.Update(key("j"))
	m.Update(key("j"))
	m.Update(key("j")) // clamps at the last entry
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m.Update(key("k"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestBrowseEnterOpensEditor(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should switch views")
	}
	msg, ok := cmd().(SwitchViewMsg)
	if !ok {
		t.Fatalf("emitted %T, want SwitchViewMsg", cmd())
	}
	if msg.view != editorView || msg.listing != "clay-bowl.yaml" {
		t.Errorf("switch = %+v", msg)
	}
}

func TestBrowseCropKey(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	_, cmd := m.Update(key("c"))
	if cmd == nil {
		t.Fatal("c should switch views")
	}
	msg := cmd().(SwitchViewMsg)
	if msg.view != cropView || msg.listing != "alpaca-blanket.yaml" {
		t.Errorf("switch = %+v", msg)
	}
}

func TestBrowseFilter(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	m.Update(key("/"))
	if !m.filtering {
		t.Fatal("slash should start filtering")
	}
	for _, r := range "tag:ceramics" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(key("enter"))

	if len(m.listings) != 1 || m.listings[0].Title != "Clay Bowl" {
		t.Fatalf("filter result = %v", m.listings)
	}

	// esc clears the filter
	m.Update(key("/"))
	m.Update(key("esc"))
	if len(m.listings) != 3 {
		t.Errorf("cleared filter should show all, got %d", len(m.listings))
	}
}

func TestBrowseFilterErrorSurfaces(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	m.Update(key("/"))
	for _, r := range "under:abc" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(key("enter"))

	if m.filterErr == "" {
		t.Error("bad query should surface an error")
	}
	testhelpers.AssertContains(t, m.View(), m.filterErr)
}

func TestBrowseDeleteConfirm(t *testing.T) {
	testhelpers.WithTestProject(t)
	seedBrowseListings(t)

	m := NewBrowseModel()
	m.Update(key("d"))
	if !m.confirm.Active() {
		t.Fatal("delete should ask for confirmation")
	}

	// declining keeps the listing
	m.Update(key("n"))
	if m.confirm.Active() {
		t.Error("n should dismiss the prompt")
	}
	if paths, _ := files.ListListings(); len(paths) != 3 {
		t.Fatalf("listing deleted after declining, %d left", len(paths))
	}

	m.Update(key("d"))
	_, cmd := m.Update(key("y"))
	if cmd != nil {
		cmd()
	}
	if paths, _ := files.ListListings(); len(paths) != 2 {
		t.Errorf("expected 2 listings after delete, got %d", len(paths))
	}
}
