package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/pkg/files"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <listing>",
		Aliases: []string{"rm"},
		Short:   "Delete a listing",
		Long: `Delete a listing's metadata file. The description and images stay on
disk; they may be shared with other listings.

Examples:
  # Delete with a confirmation prompt
  feria delete wool-scarf

  # Skip the prompt
  feria delete wool-scarf --yes`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runDelete,
	}
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	listing, err := cli.ResolveListing(args[0])
	if err != nil {
		return err
	}
	ok, err := cli.Confirm(fmt.Sprintf("Delete listing %q (%s)?", listing.Title, listing.Path), false)
	if err != nil {
		return err
	}
	if !ok {
		cli.PrintInfo("cancelled")
		return nil
	}
	if err := files.DeleteListing(listing.Path); err != nil {
		return err
	}
	cli.PrintSuccess("deleted %s", listing.Path)
	return nil
}
