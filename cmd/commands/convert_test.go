package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/richtext"
)

func runConvertCommand(t *testing.T, args ...string) {
	t.Helper()
	cmd := NewConvertCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert %v: %v", args, err)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "description.md")
	deltaPath := filepath.Join(dir, "ops.json")
	backPath := filepath.Join(dir, "back.md")

	original := "# Wool Scarf\n\nHand woven from **local** wool.\n\n- warm\n- washable\n"
	if err := os.WriteFile(source, []byte(original), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	runConvertCommand(t, source, "--to", "delta", "--output", deltaPath)

	data, err := os.ReadFile(deltaPath)
	if err != nil {
		t.Fatalf("read delta: %v", err)
	}
	var ops richtext.Ops
	if err := json.Unmarshal(data, &ops); err != nil {
		t.Fatalf("delta output is not valid ops JSON: %v", err)
	}
	if len(ops) == 0 {
		t.Fatal("empty ops")
	}

	runConvertCommand(t, deltaPath, "--to", "markdown", "--output", backPath)

	back, err := os.ReadFile(backPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	reOps, diags := markdown.Parse(string(back))
	if diags.HasProblems() {
		t.Fatalf("round trip introduced problems: %v", diags.Problems)
	}
	if !ops.Normalize().Equal(reOps.Normalize()) {
		t.Errorf("round trip diverged:\n%s\n->\n%s", original, back)
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	source := filepath.Join(t.TempDir(), "in.md")
	if err := os.WriteFile(source, []byte("hello\n"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cmd := NewConvertCommand()
	cmd.SetArgs([]string{source, "--to", "html"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConvertRejectsMalformedDelta(t *testing.T) {
	source := filepath.Join(t.TempDir(), "ops.json")
	if err := os.WriteFile(source, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cmd := NewConvertCommand()
	cmd.SetArgs([]string{source, "--to", "markdown"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for malformed delta")
	}
}
