// Package logging provides logging utilities for edi.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("skipping item", "section", section, "item", name)
//	logging.Info("using overlay configuration file", "path", path)
//
// # User Output
//
// User-facing messages are formatted with status indicators styled via
// lipgloss:
//
//	logging.UserInfo("Going to run %d playbooks", n)
//	logging.UserSuccess("Applied playbook %s", name)
//	logging.UserWarning("No items in section %s", section)
//	logging.UserError("Failed to load configuration: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout by default)
//   - UserWarning, UserError: Stderr (os.Stderr by default)
package logging
