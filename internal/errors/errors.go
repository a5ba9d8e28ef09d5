package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for edi
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitConfigError     = 2
	ExitTemplateError   = 3
	ExitParseError      = 4
	ExitVersionMismatch = 5
	ExitMissingPath     = 6
	ExitPathNotFound    = 7
	ExitCommandFailed   = 8
)

// EdiError is the base error type for edi
type EdiError struct {
	Code    int
	Message string
	Cause   error
}

func (e *EdiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EdiError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *EdiError) ExitCode() int {
	return e.Code
}

// New creates a new EdiError
func New(code int, message string) *EdiError {
	return &EdiError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an EdiError
func Wrap(code int, message string, cause error) *EdiError {
	return &EdiError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Configuration error constructors

// ConfigError returns an error for unreadable or malformed configuration
func ConfigError(message string, cause error) *EdiError {
	return Wrap(ExitConfigError, message, cause)
}

// TemplateError returns an error for a template that could not be rendered
func TemplateError(file string, cause error) *EdiError {
	return Wrap(ExitTemplateError, fmt.Sprintf("failed to render template %s", file), cause)
}

// ParseError returns an error for a rendered document that is not valid markup
func ParseError(file string, cause error) *EdiError {
	return Wrap(ExitParseError, fmt.Sprintf("failed to parse %s", file), cause)
}

// VersionMismatch returns an error when the running version is older than required
func VersionMismatch(required string) *EdiError {
	return New(ExitVersionMismatch, fmt.Sprintf(
		"the current configuration requires a newer version of edi (>=%s); please update your edi installation", required))
}

// MissingPath returns an error for a nested item without a path
func MissingPath(section, item string) *EdiError {
	return New(ExitMissingPath, fmt.Sprintf("missing path item in section '%s' for '%s'", section, item))
}

// PathNotFound returns an error for a path that could not be resolved.
// With no locations the path was absolute.
func PathNotFound(path string, locations ...string) *EdiError {
	if len(locations) == 0 {
		return New(ExitPathNotFound, fmt.Sprintf("'%s' does not exist", path))
	}
	return New(ExitPathNotFound, fmt.Sprintf("'%s' not found in the following locations:\n%s",
		path, strings.Join(locations, "\n")))
}

// CommandFailed returns an error for an external command that failed
func CommandFailed(command string, cause error) *EdiError {
	return Wrap(ExitCommandFailed, fmt.Sprintf("command %s failed", command), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *EdiError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var ediErr *EdiError
	if errors.As(err, &ediErr) {
		return ediErr.ExitCode()
	}
	return ExitGeneralError
}

// IsConfigError reports whether err is a fatal configuration error of any kind.
func IsConfigError(err error) bool {
	switch GetExitCode(err) {
	case ExitConfigError, ExitTemplateError, ExitParseError,
		ExitVersionMismatch, ExitMissingPath, ExitPathNotFound:
		return true
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
