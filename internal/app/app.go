// Package app provides the application context for edi.
// It allows dependency injection for testing.
package app

import (
	"os"

	"github.com/edi-build/edi/internal/config"
	"github.com/edi-build/edi/internal/logging"
	"github.com/edi-build/edi/internal/playbook"
	"github.com/edi-build/edi/internal/system"
	"github.com/edi-build/edi/internal/version"
)

// PluginDirEnv moves the tool-wide plugin directory.
const PluginDirEnv = "EDI_PLUGIN_DIRECTORY"

// App holds the application dependencies
type App struct {
	// Host answers user, host name and environment lookups
	Host system.Host

	// FS is the file system configurations are read from
	FS system.FileSystem

	// Executor runs external commands
	Executor system.CommandExecutor

	// Store caches resolved configurations for the life of the process
	Store *config.Store

	// Version is the running edi version
	Version string

	// PluginDir is the tool-wide plugin directory
	PluginDir string

	// WorkDir is where build artifacts and temporary files go
	WorkDir string
}

// Option is a function that configures the App
type Option func(*App)

// WithHost sets a custom host
func WithHost(h system.Host) Option {
	return func(a *App) {
		a.Host = h
	}
}

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithStore sets a custom configuration cache
func WithStore(s *config.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithVersion overrides the running version
func WithVersion(v string) Option {
	return func(a *App) {
		a.Version = v
	}
}

// WithPluginDir sets the tool-wide plugin directory
func WithPluginDir(dir string) Option {
	return func(a *App) {
		a.PluginDir = dir
	}
}

// WithWorkDir sets the work directory
func WithWorkDir(dir string) Option {
	return func(a *App) {
		a.WorkDir = dir
	}
}

// New creates a new App with the given options.
// Unset dependencies fall back to the real system.
func New(opts ...Option) *App {
	app := &App{
		Host:     system.DefaultHost(),
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
		Version:  version.Version,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Store == nil {
		app.Store = config.NewStore()
	}
	if app.PluginDir == "" {
		app.PluginDir = app.Host.Getenv(PluginDirEnv, config.DefaultPluginDir)
	}
	if app.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			logging.Debug("failed to determine working directory", "error", err)
		}
		app.WorkDir = wd
	}

	return app
}

// Resolver returns a configuration resolver sharing the app's cache
func (a *App) Resolver() *config.Resolver {
	return config.NewResolver(
		config.WithFS(a.FS),
		config.WithHost(a.Host),
		config.WithStore(a.Store),
		config.WithVersion(a.Version),
		config.WithPluginDir(a.PluginDir),
		config.WithWorkDir(a.WorkDir),
	)
}

// Load resolves the configuration rooted at baseFile
func (a *App) Load(baseFile string) (*config.Configuration, error) {
	return a.Resolver().Load(baseFile)
}

// PlaybookRunner creates a runner applying cfg's playbooks to target
func (a *App) PlaybookRunner(cfg *config.Configuration, target string, connection playbook.Connection) (*playbook.Runner, error) {
	return playbook.NewRunner(cfg, target, connection,
		playbook.WithFS(a.FS),
		playbook.WithExecutor(a.Executor),
		playbook.WithHost(a.Host),
	)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
