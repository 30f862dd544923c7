package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/feria/feria-cli/cmd/commands"
	"github.com/feria/feria-cli/internal/cli"
	"github.com/feria/feria-cli/internal/logging"
	"github.com/feria/feria-cli/pkg/files"
	"github.com/feria/feria-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet   bool
	flagNoColor bool
	flagYes     bool
)

var rootCmd = &cobra.Command{
	Use:   "feria",
	Short: "Terminal-based studio for community marketplace listings",
	Long:  `Feria is a terminal-based studio for preparing community marketplace listings. It stores everything as plain text files (Markdown and YAML) and provides a TUI for writing descriptions and cropping listing images.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !files.ProjectExists() {
			fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", files.FeriaDir)
			fmt.Fprintf(os.Stderr, "Please run 'feria init' first to initialize a new project.\n")
			os.Exit(1)
		}

		settings, err := files.ReadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to read settings: %v\n", err)
			os.Exit(1)
		}
		logger, err := logging.New(files.FeriaDir, settings.Logging.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		app := tui.NewApp(settings, logger)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Feria project",
	Long:  `Creates the .feria folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing Feria project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Println("✓ Created .feria folder structure")
		fmt.Println("✓ You can now create listings!")
		fmt.Println("\nRun 'feria' to start the interactive TUI.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Feria",
	Long:  `Display the current version of the Feria CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Feria version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewEditCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewCropCommand())
	rootCmd.AddCommand(commands.NewComposeCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewTagsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
