package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/richtext"
)

var (
	convertTo   string
	convertOut  string
	convertCopy bool
)

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <file>",
		Aliases: []string{"conv"},
		Short:   "Convert between Markdown and rich-text deltas",
		Long: `Convert a Markdown document to rich-text delta JSON, or back.

Use - to read from stdin. Conversion problems (unsupported constructs kept
as literal text) are printed to stderr; they never abort the conversion.

Examples:
  # Markdown to delta JSON
  feria convert description.md --to delta

  # Delta JSON back to Markdown
  feria convert ops.json --to markdown

  # From stdin to the clipboard
  cat description.md | feria convert - --to delta --copy`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringVar(&convertTo, "to", "delta", "Target format (delta, markdown)")
	cmd.Flags().StringVarP(&convertOut, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&convertCopy, "copy", false, "Copy the result to the clipboard")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, err := readInput(args[0])
	if err != nil {
		return err
	}

	var result string
	switch convertTo {
	case "delta":
		ops, diags := markdown.Parse(input)
		for _, p := range diags.Problems {
			cli.PrintWarning("line %d: %s", p.Line, p.Message)
		}
		data, err := json.MarshalIndent(ops, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode delta: %w", err)
		}
		result = string(data) + "\n"
	case "markdown", "md":
		var ops richtext.Ops
		if err := json.Unmarshal([]byte(input), &ops); err != nil {
			return fmt.Errorf("failed to decode delta: %w", err)
		}
		result = markdown.Serialize(ops)
	default:
		return fmt.Errorf("unknown target format %q (must be delta or markdown)", convertTo)
	}

	if convertCopy {
		if err := clipboard.WriteAll(result); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("copied %d bytes to clipboard", len(result))
	}
	if convertOut != "" {
		if err := os.WriteFile(convertOut, []byte(result), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", convertOut, err)
		}
		cli.PrintSuccess("wrote %s", convertOut)
		return nil
	}
	if !convertCopy {
		fmt.Print(result)
	}
	return nil
}

func readInput(source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}
