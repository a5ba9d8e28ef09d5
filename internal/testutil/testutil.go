// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edi-build/edi/internal/app"
	"github.com/edi-build/edi/internal/config"
	"github.com/edi-build/edi/internal/system"
)

const (
	// TestUser is the user name the mock host reports.
	TestUser = "testuser"
	// TestHost is the host name the mock host reports.
	TestHost = "testhost"
)

// TestEnv holds the test environment
type TestEnv struct {
	T          *testing.T
	TmpDir     string
	ProjectDir string
	PluginDir  string
	WorkDir    string
	Host       *system.MockHost
	Executor   *system.MockExecutor
	App        *app.App
	cleanup    func()
}

// NewTestEnv creates a new test environment on the real file system with a
// mock host and executor. The returned App is installed as app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	env := &TestEnv{
		T:          t,
		TmpDir:     tmpDir,
		ProjectDir: filepath.Join(tmpDir, "project"),
		PluginDir:  filepath.Join(tmpDir, "share", "edi", "plugins"),
		WorkDir:    filepath.Join(tmpDir, "work"),
		Host:       system.NewMockHost(TestUser, TestHost),
		Executor:   system.NewMockExecutor(),
	}

	// Create directories
	for _, dir := range []string{
		env.ProjectDir,
		config.OverlayDir(env.ProjectDir),
		env.PluginDir,
		env.WorkDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	env.App = app.New(
		app.WithFS(system.DefaultFS()),
		app.WithHost(env.Host),
		app.WithExecutor(env.Executor),
		app.WithPluginDir(env.PluginDir),
		app.WithWorkDir(env.WorkDir),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(env.App)
	env.cleanup = func() {
		app.SetDefault(originalDefault)
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// WriteBase writes a base configuration file into the project directory
// and returns its path.
func (e *TestEnv) WriteBase(name, content string) string {
	e.T.Helper()
	return e.write(filepath.Join(e.ProjectDir, name), content)
}

// WriteOverlay writes the overlay of base for discriminator.
func (e *TestEnv) WriteOverlay(base, discriminator, content string) string {
	e.T.Helper()

	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	return e.write(filepath.Join(config.OverlayDir(e.ProjectDir), stem+"."+discriminator+ext), content)
}

// WriteProjectPlugin writes a file below the project plugin directory.
func (e *TestEnv) WriteProjectPlugin(rel, content string) string {
	e.T.Helper()
	return e.write(filepath.Join(e.ProjectDir, config.ProjectPluginDirName, rel), content)
}

// WriteToolPlugin writes a file below the tool-wide plugin directory.
func (e *TestEnv) WriteToolPlugin(rel, content string) string {
	e.T.Helper()
	return e.write(filepath.Join(e.PluginDir, rel), content)
}

// InstallFixtureProject copies the embedded sample project and its
// overlays into the project directory, creates the plugin files it
// references in the tool plugin directory and returns the base path.
func (e *TestEnv) InstallFixtureProject() string {
	e.T.Helper()

	base := FixtureProject + ".yml"
	data, err := LoadFixture(base)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", base, err)
	}
	path := e.WriteBase(base, string(data))

	discriminators, err := FixtureOverlays()
	if err != nil {
		e.T.Fatalf("Failed to list fixtures: %v", err)
	}
	for _, d := range discriminators {
		name := FixtureProject + "." + d + ".yml"
		data, err := LoadFixture(name)
		if err != nil {
			e.T.Fatalf("Failed to load fixture %s: %v", name, err)
		}
		e.WriteOverlay(base, d, string(data))
	}

	for _, rel := range FixturePlugins {
		e.WriteToolPlugin(rel, "# "+rel+"\n")
	}
	return path
}

func (e *TestEnv) write(path, content string) string {
	e.T.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
