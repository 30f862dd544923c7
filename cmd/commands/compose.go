package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/storefront"
)

var (
	composeTitle  string
	composeOutput string
	composeCopy   bool
	composeStdout bool
)

// NewComposeCommand creates the compose command
func NewComposeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose all listings into a storefront document",
		Long: `Compose every listing into a single Markdown storefront, grouped by
currency and sorted by title.

Description conversion problems are reported but never block composition.

Examples:
  # Write the storefront to the configured output file
  feria compose

  # Custom title and destination
  feria compose --title "Saturday market" --output market.md

  # Straight to the clipboard
  feria compose --copy`,
		PreRunE: requireProject,
		RunE:    runCompose,
	}

	cmd.Flags().StringVar(&composeTitle, "title", "Storefront", "Document title")
	cmd.Flags().StringVarP(&composeOutput, "output", "o", "", "Output file (default from settings)")
	cmd.Flags().BoolVar(&composeCopy, "copy", false, "Copy the document to the clipboard")
	cmd.Flags().BoolVar(&composeStdout, "stdout", false, "Print the document instead of writing a file")
	return cmd
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}

	doc, diags, err := storefront.Compose(composeTitle)
	if err != nil {
		return err
	}
	for _, p := range diags.Problems {
		cli.PrintWarning("line %d: %s", p.Line, p.Message)
	}

	if composeCopy {
		if err := clipboard.WriteAll(doc); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess("copied storefront to clipboard")
		return nil
	}
	if composeStdout {
		fmt.Print(doc)
		return nil
	}

	output := composeOutput
	if output == "" {
		output = ctx.Settings.Output.StorefrontFile
	}
	if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	cli.PrintSuccess("wrote %s", output)
	return nil
}
