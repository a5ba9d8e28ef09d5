// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// NewTestEnv lays out a throwaway project below t.TempDir():
//
//	<tmp>/project/                        base configuration files
//	<tmp>/project/configuration/overlay/  overlays
//	<tmp>/project/plugins/                project plugins
//	<tmp>/share/edi/plugins/              tool-wide plugins
//	<tmp>/work/                           work directory
//
// The environment reports user "testuser" on host "testhost" through a
// system.MockHost and records commands in a system.MockExecutor. Its App
// replaces app.Default until the test ends.
//
// # Fixtures
//
// A sample project is embedded using go:embed:
//
//	fixtures/image.yml           base configuration
//	fixtures/image.global.yml    environment overlay
//	fixtures/image.testuser.yml  overlay of the test user
//
// InstallFixtureProject writes it, and the plugin files it references,
// into a TestEnv:
//
//	env := testutil.NewTestEnv(t)
//	base := env.InstallFixtureProject()
//	cfg, err := env.App.Load(base)
package testutil
