// Package errors provides typed errors with exit codes for edi.
//
// # Error Types
//
// EdiError is the base error type that wraps an error with an exit code:
//
//	type EdiError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Every fatal configuration problem has its own code so callers can tell
// a template mistake from a markup mistake:
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitConfigError     = 2  // Unreadable or malformed configuration
//	ExitTemplateError   = 3  // Template rendering failed (e.g. unknown variable)
//	ExitParseError      = 4  // Rendered document is not valid markup
//	ExitVersionMismatch = 5  // Configuration requires a newer edi
//	ExitMissingPath     = 6  // Nested item without a path
//	ExitPathNotFound    = 7  // Referenced file not found
//	ExitCommandFailed   = 8  // External command failed
//
// IsConfigError reports whether an error chain carries any of the
// configuration codes (2 through 7).
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
