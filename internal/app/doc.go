// Package app provides the application context for edi.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Host      system.Host            // User, host name and environment
//	    FS        system.FileSystem      // Configuration and plugin files
//	    Executor  system.CommandExecutor // ansible-playbook
//	    Store     *config.Store          // Resolved configuration cache
//	    Version   string                 // Running edi version
//	    PluginDir string                 // Tool-wide plugin directory
//	    WorkDir   string                 // Artifacts and temporary files
//	}
//
// The plugin directory defaults to /usr/share/edi/plugins and follows
// $EDI_PLUGIN_DIRECTORY when it is set.
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(mockFS),
//	    app.WithHost(system.NewMockHost("alice", "buildhost")),
//	    app.WithExecutor(mockExec),
//	)
//
// Every resolver handed out by an App shares its Store, so a project's
// files are read once per process no matter how many commands load it.
package app
