package testhelpers

import (
	"reflect"
	"strings"
	"testing"

	"github.com/feria/feria-cli/pkg/models"
)

// AssertListingEqual checks the fields a round trip through disk preserves.
func AssertListingEqual(t *testing.T, expected, actual *models.Listing) {
	t.Helper()

	if expected.Title != actual.Title {
		t.Errorf("Listing title mismatch: expected %q, got %q", expected.Title, actual.Title)
	}
	if expected.Price != actual.Price {
		t.Errorf("Listing price mismatch: expected %v, got %v", expected.Price, actual.Price)
	}
	if expected.Currency != actual.Currency {
		t.Errorf("Listing currency mismatch: expected %q, got %q", expected.Currency, actual.Currency)
	}
	if expected.Description != actual.Description {
		t.Errorf("Listing description mismatch: expected %q, got %q", expected.Description, actual.Description)
	}
	if expected.Image != actual.Image {
		t.Errorf("Listing image mismatch: expected %q, got %q", expected.Image, actual.Image)
	}
	if !reflect.DeepEqual(expected.Tags, actual.Tags) {
		t.Errorf("Listing tags mismatch: expected %v, got %v", expected.Tags, actual.Tags)
	}
}

// AssertContains checks that a rendered view includes a substring.
func AssertContains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Errorf("Expected output to contain %q, got:\n%s", want, view)
	}
}

// AssertNotContains checks that a rendered view excludes a substring.
func AssertNotContains(t *testing.T, view, unwanted string) {
	t.Helper()
	if strings.Contains(view, unwanted) {
		t.Errorf("Expected output to not contain %q, got:\n%s", unwanted, view)
	}
}
