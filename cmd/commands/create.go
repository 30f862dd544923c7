package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/models"
	"github.com/feria/feria-cli/pkg/tags"
)

var (
	createPrice       float64
	createCurrency    string
	createTags        []string
	createImage       string
	createDescription string
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new listing",
		Long: `Create a new listing with an empty or pre-filled description.

The file name is derived from the title. Tags are registered in the tag
registry as they are first used.

Examples:
  # Minimal listing
  feria create "Wool scarf" --price 45 --currency USD

  # With tags and a source image
  feria create "Clay bowl" --price 12.50 --currency USD \
    --tag ceramics --tag handmade --image ./photos/bowl.jpg

  # Pipe the description from stdin
  cat body.md | feria create "Wool scarf" --price 45 --currency USD --description -`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runCreate,
	}

	cmd.Flags().Float64Var(&createPrice, "price", 0, "Listing price")
	cmd.Flags().StringVar(&createCurrency, "currency", "USD", "Price currency code")
	cmd.Flags().StringArrayVar(&createTags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringVar(&createImage, "image", "", "Source image to copy into the project")
	cmd.Flags().StringVar(&createDescription, "description", "", "Description Markdown file, or - for stdin")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	title := args[0]
	name := cli.NormalizeListingName(title)
	if err := cli.ValidateListingName(name); err != nil {
		return err
	}
	listingPath := name + ".yaml"
	if _, err := files.ReadListing(listingPath); err == nil {
		return fmt.Errorf("listing %s already exists", listingPath)
	}

	listing := &models.Listing{
		Title:    title,
		Path:     listingPath,
		Price:    createPrice,
		Currency: createCurrency,
		Tags:     createTags,
	}

	if createDescription != "" {
		content, err := readDescriptionSource(createDescription)
		if err != nil {
			return err
		}
		descPath := name + ".md"
		if err := files.WriteDescription(descPath, content); err != nil {
			return err
		}
		listing.Description = descPath
	}

	if createImage != "" {
		if err := cli.ValidateImageFile(createImage); err != nil {
			return err
		}
		imageName := name + filepath.Ext(createImage)
		if err := copyFile(createImage, files.ImagePath(imageName)); err != nil {
			return err
		}
		listing.Image = imageName
	}

	if err := files.WriteListing(listing); err != nil {
		return err
	}
	if err := registerTags(createTags); err != nil {
		cli.PrintWarning("listing created, but tag registry update failed: %v", err)
	}

	cli.PrintSuccess("created %s", listingPath)
	return nil
}

func readDescriptionSource(source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read description from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read description file: %w", err)
	}
	return string(data), nil
}

func registerTags(names []string) error {
	if len(names) == 0 {
		return nil
	}
	registry, err := tags.NewRegistry()
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, exists := registry.Lookup(name); exists {
			continue
		}
		tag := models.Tag{Name: name, Color: models.GetTagColor(name, "")}
		if err := registry.Add(tag); err != nil {
			return err
		}
	}
	return registry.Save()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy image: %w", err)
	}
	return nil
}
