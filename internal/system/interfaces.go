// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations for testability.
//
// Lstat and Readlink make every FileSystem usable as a securejoin.VFS, so
// confined path joins see the same tree as the rest of the code.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file info for the named file, following symlinks.
	Stat(path string) (fs.FileInfo, error)

	// Lstat returns file info for the named file without following symlinks.
	Lstat(path string) (fs.FileInfo, error)

	// Readlink returns the destination of the named symbolic link.
	Readlink(path string) (string, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// MkdirTemp creates a new uniquely named directory inside dir.
	MkdirTemp(dir, pattern string) (string, error)

	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error

	// IsFile returns true if path exists and is a regular file.
	IsFile(path string) bool
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in PATH.
	LookPath(file string) (string, error)

	// ExecuteInteractive runs a command with stdin/stdout/stderr connected to the terminal.
	// env entries ("KEY=value") are appended to the current environment.
	ExecuteInteractive(ctx context.Context, env []string, name string, args ...string) error
}

// Default instances using real OS operations.
var (
	defaultFS       FileSystem      = &osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{}
	defaultHost     Host            = &osHost{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// DefaultHost returns the default Host implementation.
func DefaultHost() Host {
	return defaultHost
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// SetDefaultHost sets the default Host (useful for testing).
func SetDefaultHost(h Host) {
	defaultHost = h
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultExecutor = &osExecutor{}
	defaultHost = &osHost{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (f *osFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (f *osFileSystem) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

func (f *osFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (f *osFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
