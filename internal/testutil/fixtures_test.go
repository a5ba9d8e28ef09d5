package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edi-build/edi/internal/config"
)

func TestFixtureOverlays(t *testing.T) {
	got, err := FixtureOverlays()
	if err != nil {
		t.Fatalf("FixtureOverlays() error: %v", err)
	}

	if diff := cmp.Diff([]string{"global", TestUser}, got); diff != "" {
		t.Errorf("FixtureOverlays() mismatch (-want +got):\n%s", diff)
	}
}

func TestFixtureProject(t *testing.T) {
	env := NewTestEnv(t)
	base := env.InstallFixtureProject()

	cfg, err := env.App.Load(base)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got, want := cfg.BootstrapRepository(), "deb http://mirror.example.com/debian/ bookworm main"; got != want {
		t.Errorf("BootstrapRepository() = %q, want %q", got, want)
	}
	if got := cfg.BootstrapTool(); got != "debootstrap" {
		t.Errorf("BootstrapTool() = %q, want debootstrap", got)
	}

	playbooks, err := cfg.OrderedPathItems(config.SectionPlaybooks)
	if err != nil {
		t.Fatalf("OrderedPathItems() error: %v", err)
	}
	if len(playbooks) != 2 {
		t.Fatalf("OrderedPathItems() returned %d playbooks, want 2", len(playbooks))
	}

	if got, want := playbooks[0].Node["message"], "built by testuser on testhost"; got != want {
		t.Errorf("message = %v, want %q", got, want)
	}
	if got := playbooks[1].Node["export_display"]; got != true {
		t.Errorf("export_display = %v, want true", got)
	}
	if got, want := playbooks[1].Path, filepath.Join(env.PluginDir, FixturePlugins[1]); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}

	folders, err := cfg.OrderedRawItems(config.SectionSharedFolders)
	if err != nil {
		t.Fatalf("OrderedRawItems() error: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("shared folders = %v, want the workspace to be skipped", folders)
	}
}

func TestNewTestEnv_ProjectPluginWins(t *testing.T) {
	env := NewTestEnv(t)
	base := env.WriteBase("p.yml", "keys:\n  k:\n    path: keys/k.key\n")
	env.WriteToolPlugin("keys/k.key", "tool")
	want := env.WriteProjectPlugin("keys/k.key", "project")

	cfg, err := env.App.Load(base)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	keys, err := cfg.OrderedPathItems(config.SectionKeys)
	if err != nil {
		t.Fatalf("OrderedPathItems() error: %v", err)
	}
	if len(keys) != 1 || keys[0].Path != want {
		t.Errorf("OrderedPathItems() = %v, want %s", keys, want)
	}
}
