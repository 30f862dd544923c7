package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/tags"
)

// TagUsage pairs a tag with its listing count for output.
type TagUsage struct {
	Name     string `json:"name" yaml:"name"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Listings int    `json:"listings" yaml:"listings"`
}

var tagsOutput string

// NewTagsCommand creates the tags command
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags and their usage",
		Long: `List every tag in use across listings, with how many listings carry it.
Registered tags show their color; tags used on listings but never
registered appear too.

Examples:
  # Usage table
  feria tags

  # JSON output
  feria tags -o json`,
		PreRunE: requireProject,
		RunE:    runTags,
	}
	cmd.Flags().StringVarP(&tagsOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	registry, err := tags.NewRegistry()
	if err != nil {
		return err
	}
	counts, err := tags.CountAllTags()
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var usage []TagUsage
	for _, tag := range registry.All() {
		usage = append(usage, TagUsage{Name: tag.Name, Color: tag.Color, Listings: counts[tag.Name]})
		seen[tag.Name] = true
	}
	for name, count := range counts {
		if !seen[name] {
			usage = append(usage, TagUsage{Name: name, Listings: count})
		}
	}
	sort.Slice(usage, func(i, j int) bool { return usage[i].Name < usage[j].Name })

	if tagsOutput != "text" {
		return cli.OutputResults(os.Stdout, tagsOutput, usage)
	}
	if len(usage) == 0 {
		cli.PrintInfo("no tags in use")
		return nil
	}
	table := cli.NewTableFormatter(os.Stdout)
	table.Header("TAG", "LISTINGS")
	for _, u := range usage {
		table.Row(cli.ColorizeTag(u.Name, u.Color), fmt.Sprintf("%d", u.Listings))
	}
	table.Flush()
	return nil
}
