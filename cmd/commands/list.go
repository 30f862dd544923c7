package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/search"
)

// ListResult represents the output structure for the list command
type ListResult struct {
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single listing in the list
type ListItem struct {
	Title    string   `json:"title" yaml:"title"`
	Filename string   `json:"filename" yaml:"filename"`
	Price    float64  `json:"price" yaml:"price"`
	Currency string   `json:"currency" yaml:"currency"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Image    string   `json:"image,omitempty" yaml:"image,omitempty"`
}

var (
	listFilter string
	listOutput string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketplace listings",
		Long: `List all listings in the current project.

Examples:
  # List everything
  feria list

  # Filter with a search query
  feria list --filter "tag:textiles under:50"

  # JSON output
  feria list -o json`,
		PreRunE: requireProject,
		RunE:    runList,
	}

	cmd.Flags().StringVar(&listFilter, "filter", "", "Search query to filter listings")
	cmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func requireProject(cmd *cobra.Command, args []string) error {
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'feria init' first", files.FeriaDir)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	engine := search.NewEngine()
	if err := engine.BuildIndex(); err != nil {
		return err
	}
	results, err := engine.Search(listFilter)
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

	if listOutput != "text" {
		return cli.OutputResults(os.Stdout, listOutput, out)
	}

	if out.Count == 0 {
		cli.PrintInfo("no listings found")
		return nil
	}
	table := cli.NewTableFormatter(os.Stdout)
	table.Header("TITLE", "PRICE", "FILE", "TAGS")
	for _, item := range out.Items {
		table.Row(
			cli.TruncateString(item.Title, 40),
			fmt.Sprintf("%.2f %s", item.Price, item.Currency),
			item.Filename,
			strings.Join(item.Tags, ","),
		)
	}
	table.Flush()
	return nil
}
