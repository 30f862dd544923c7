package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/search"
)

var searchOutput string

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search listings",
		Long: `Search listings by free text and field conditions.

Conditions:
  tag:<name>        listing carries the tag
  currency:<code>   listing priced in the currency
  title:<text>      title contains the text
  under:<price>     price at or below the value

Bare words match against title and description text.

Examples:
  # Free-text search
  feria search "wool scarf"

  # Tagged ceramics under 20
  feria search "tag:ceramics under:20"

  # JSON output
  feria search "currency:USD" -o json`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE:    runSearch,
	}
	cmd.Flags().StringVarP(&searchOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	engine := search.NewEngine()
	if err := engine.BuildIndex(); err != nil {
		return err
	}
	results, err := engine.Search(query)
	if err != nil {
		return err
	}

	out := ListResult{Items: make([]ListItem, 0, len(results))}
	for _, r := range results {
		out.Items = append(out.Items, ListItem{
			Title:    r.Listing.Title,
			Filename: r.Listing.Path,
			Price:    r.Listing.Price,
			Currency: r.Listing.Currency,
			Tags:     r.Listing.Tags,
			Image:    r.Listing.Image,
		})
	}
	out.Count = len(out.Items)

	if searchOutput != "text" {
		return cli.OutputResults(os.Stdout, searchOutput, out)
	}
	if out.Count == 0 {
		cli.PrintInfo("no listings match %q", query)
		return nil
	}
	for _, item := range out.Items {
		fmt.Printf("%s  %.2f %s  (%s)\n", item.Title, item.Price, item.Currency, item.Filename)
	}
	return nil
}
