package testutil

import (
	"embed"
	"path/filepath"
	"strings"
)

//go:embed fixtures/*.yml
var fixturesFS embed.FS

// FixtureProject is the stem of the embedded sample project.
const FixtureProject = "image"

// FixturePlugins lists the plugin files the sample project references,
// relative to a plugin directory.
var FixturePlugins = []string{
	"playbooks/debian/base_system/main.yml",
	"playbooks/debian/development_user/main.yml",
	"lxc_templates/debian/bookworm/lxc.tpl",
	"lxc_profiles/general/default.yml",
	"keys/debian/debian_archive.key",
}

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// FixtureOverlays returns the discriminators of the sample project's
// overlays, e.g. "global" for image.global.yml.
func FixtureOverlays() ([]string, error) {
	entries, err := fixturesFS.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}

	var discriminators []string
	for _, e := range entries {
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if d, ok := strings.CutPrefix(stem, FixtureProject+"."); ok {
			discriminators = append(discriminators, d)
		}
	}
	return discriminators, nil
}
