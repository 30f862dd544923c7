package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/markdown"
	"github.com/feria/feria-cli/pkg/utils"
)

// ShowResult is the machine-readable form of a listing plus its body.
type ShowResult struct {
	Title        string   `json:"title" yaml:"title"`
	Filename     string   `json:"filename" yaml:"filename"`
	Price        float64  `json:"price" yaml:"price"`
	Currency     string   `json:"currency" yaml:"currency"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	CroppedImage string   `json:"cropped_image,omitempty" yaml:"cropped_image,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	WordCount    int      `json:"word_count" yaml:"word_count"`
	Problems     []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

var showOutput string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <listing>",
		Short: "Show a listing's details and description",
		Long: `Show one listing's metadata and Markdown description.

The listing may be referenced by file name, name without extension, or a
unique title prefix.

Examples:
  # Show by file name
  feria show wool-scarf.yaml

  # Show by title prefix
  feria show "Wool"

  # JSON output
  feria show wool-scarf -o json`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runShow,
	}
	cmd.Flags().StringVarP(&showOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	listing, err := cli.ResolveListing(args[0])
	if err != nil {
		return err
	}

	result := ShowResult{
		Title:        listing.Title,
		Filename:     listing.Path,
		Price:        listing.Price,
		Currency:     listing.Currency,
		Tags:         listing.Tags,
		Image:        listing.Image,
		CroppedImage: listing.CroppedImage,
	}
	if listing.Description != "" {
		desc, err := files.ReadDescription(listing.Description)
		if err != nil {
			return err
		}
		result.Description = desc.Content
		result.WordCount = utils.WordCount(desc.Content)
		_, diags := markdown.Parse(desc.Content)
		for _, p := range diags.Problems {
			result.Problems = append(result.Problems, fmt.Sprintf("line %d: %s", p.Line, p.Message))
		}
	}

	if showOutput != "text" {
		return cli.OutputResults(os.Stdout, showOutput, result)
	}

	fmt.Printf("Title:    %s\n", result.Title)
	fmt.Printf("File:     %s\n", result.Filename)
	fmt.Printf("Price:    %.2f %s\n", result.Price, result.Currency)
	if len(result.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(result.Tags, ", "))
	}
	if result.Image != "" {
		line := result.Image
		if info, err := os.Stat(files.ImagePath(result.Image)); err == nil {
			line = fmt.Sprintf("%s (%s)", result.Image, cli.FormatBytes(info.Size()))
		}
		fmt.Printf("Image:    %s\n", line)
	}
	if result.CroppedImage != "" {
		fmt.Printf("Cropped:  %s\n", result.CroppedImage)
	}
	if result.Description != "" {
		fmt.Printf("Length:   %s (~%d min read)\n",
			utils.FormatWordCount(result.WordCount),
			utils.ReadingTimeMinutes(result.Description))
		fmt.Println()
		fmt.Println(result.Description)
	}
	for _, problem := range result.Problems {
		cli.PrintWarning("%s", problem)
	}
	return nil
}
