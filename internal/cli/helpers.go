package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status styling shared by all commands; kept close to the TUI palette so
// CLI and TUI output read the same.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// confirmInput is where Confirm reads answers from; tests swap it out.
var confirmInput io.Reader = os.Stdin

// Confirm asks a yes/no question on the terminal. The --yes flag answers
// every prompt affirmatively without reading input.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Print(prompt + suffix)

	answer, err := bufio.NewReader(confirmInput).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}

// statusLine renders one status message. With color disabled the styled
// symbol is replaced by a plain prefix.
func statusLine(style lipgloss.Style, symbol, prefix, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return fmt.Sprintf("%s %s", style.Render(symbol), msg)
}

// PrintSuccess reports a completed operation on stdout; silent in quiet mode.
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Println(statusLine(successStyle, "✓", "OK", format, args...))
}

// PrintInfo reports progress on stdout; silent in quiet mode.
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Println(statusLine(infoStyle, "ℹ", "INFO", format, args...))
}

// PrintWarning reports a recoverable problem on stderr. Warnings are printed
// even in quiet mode.
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, statusLine(warningStyle, "⚠", "WARNING", format, args...))
}

// PrintError reports a failure on stderr.
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, statusLine(failureStyle, "✗", "ERROR", format, args...))
}

// Global output flags, set from the root command.
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags installs the root command's persistent flag values.
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
