package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/internal/logging"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/tui"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <listing>",
		Short: "Edit a listing in the TUI",
		Long: `Open the interactive editor directly on one listing, skipping the
browse view.

Examples:
  # Edit by file name
  feria edit wool-scarf.yaml

  # Edit by title prefix
  feria edit "Wool"`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runEdit,
	}
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	listing, err := cli.ResolveListing(args[0])
	if err != nil {
		return err
	}

	logger, err := logging.New(files.FeriaDir, ctx.Settings.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Sync()

	app := tui.NewApp(ctx.Settings, logger)
	app.OpenListing(listing.Path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the editor: %w", err)
	}
	return nil
}
