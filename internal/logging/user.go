package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output goes straight to the terminal, separate from the
// structured debug logging. Stdout and Stderr are swapped out in tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func userf(w io.Writer, indicator string, style lipgloss.Style, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", style.Render(indicator), fmt.Sprintf(format, args...))
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	userf(Stdout, "ℹ", infoStyle, format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	userf(Stdout, "✓", successStyle, format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	userf(Stderr, "⚠", warningStyle, format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	userf(Stderr, "✗", errorStyle, format, args...)
}
