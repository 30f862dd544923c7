package tui

import (
	"strings"
	"testing"

	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/tui/testhelpers"
)

func TestLoadListingWithDescription(t *testing.T) {
	testhelpers.WithTestProject(t)
	listing := testhelpers.NewListing("Wool Scarf").
		WithDescription("Hand woven from **local** wool.\n").
		Create(t)

	state := NewEditorState(false)
	if err := LoadListing(state, listing.Path); err != nil {
		t.Fatalf("LoadListing: %v", err)
	}
	if state.Textarea.Value() != "Hand woven from **local** wool.\n" {
		t.Errorf("buffer = %q", state.Textarea.Value())
	}
	if state.DescPath != listing.Description {
		t.Errorf("DescPath = %q, want %q", state.DescPath, listing.Description)
	}
	if state.Dirty {
		t.Error("freshly loaded buffer should be clean")
	}
	if state.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5", state.WordCount)
	}
}

func TestLoadListingWithoutDescription(t *testing.T) {
	testhelpers.WithTestProject(t)
	listing := testhelpers.NewListing("Clay Bowl").Create(t)

	state := NewEditorState(false)
	if err := LoadListing(state, listing.Path); err != nil {
		t.Fatalf("LoadListing: %v", err)
	}
	if state.Textarea.Value() != "" {
		t.Errorf("buffer = %q, want empty", state.Textarea.Value())
	}
	if state.DescPath != "clay-bowl.md" {
		t.Errorf("DescPath = %q, want clay-bowl.md", state.DescPath)
	}
}

func TestSaveDescriptionLinksListing(t *testing.T) {
	testhelpers.WithTestProject(t)
	listing := testhelpers.NewListing("Clay Bowl").Create(t)

	state := NewEditorState(false)
	if err := LoadListing(state, listing.Path); err != nil {
		t.Fatalf("LoadListing: %v", err)
	}
	state.Textarea.SetValue("Thrown on the wheel.\n")
	state.Dirty = true

	if err := SaveDescription(state); err != nil {
		t.Fatalf("SaveDescription: %v", err)
	}
	if state.Dirty {
		t.Error("save should clear the dirty flag")
	}

	desc, err := files.ReadDescription("clay-bowl.md")
	if err != nil {
		t.Fatalf("description not written: %v", err)
	}
	if desc.Content != "Thrown on the wheel.\n" {
		t.Errorf("content = %q", desc.Content)
	}

	reloaded, err := files.ReadListing(listing.Path)
	if err != nil {
		t.Fatalf("ReadListing: %v", err)
	}
	if reloaded.Description != "clay-bowl.md" {
		t.Errorf("listing not linked to description: %q", reloaded.Description)
	}
}

func TestSaveDescriptionRequiresListing(t *testing.T) {
	state := NewEditorState(false)
	if err := SaveDescription(state); err == nil {
		t.Error("expected error with no listing loaded")
	}
}

func TestInsertAtCursor(t *testing.T) {
	state := NewEditorState(false)
	InsertAtCursor(state, "[shop](https://example.com)")

	if !strings.Contains(state.Textarea.Value(), "[shop](https://example.com)") {
		t.Errorf("buffer = %q", state.Textarea.Value())
	}
	if !state.Dirty {
		t.Error("insert should mark the buffer dirty")
	}
}

func TestRefreshAnalysisReportsProblems(t *testing.T) {
	state := NewEditorState(false)
	state.Textarea.SetValue("intro\n\n```\ncode here\n```\n")
	RefreshAnalysis(state)

	if !state.Diagnostics.HasProblems() {
		t.Error("fenced code should surface a conversion problem")
	}
}

func TestStatusLine(t *testing.T) {
	state := NewEditorState(false)
	state.Textarea.SetValue("five words are right here")
	RefreshAnalysis(state)
	state.Dirty = true

	line := StatusLine(state)
	for _, want := range []string{"5 words", "~1 min read", "unsaved"} {
		if !strings.Contains(line, want) {
			t.Errorf("status %q missing %q", line, want)
		}
	}
}
