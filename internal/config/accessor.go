package config

import (
	"fmt"
	"path/filepath"

	"github.com/edi-build/edi/internal/errors"
	"github.com/edi-build/edi/internal/logging"
	"github.com/edi-build/edi/internal/render"
	"github.com/edi-build/edi/internal/version"
)

// Configuration is a resolved configuration. It is read-only: every
// accessor returns fresh copies.
type Configuration struct {
	id        string
	configDir string
	format    Format
	doc       *Document
	resolver  *Resolver
}

// PathItem is a non-skipped nested item whose path has been resolved.
type PathItem struct {
	Name string
	Path string
	Node map[string]any
}

// RawItem is a non-skipped nested item with its raw record.
type RawItem struct {
	Name   string
	Record Item
	Node   map[string]any
}

// ProjectName returns the configuration identity, the base file's stem.
func (c *Configuration) ProjectName() string {
	return c.id
}

// WorkDir returns the directory build artifacts are written to.
func (c *Configuration) WorkDir() string {
	return c.resolver.workDir
}

// ConfigDirectory returns the directory holding the base file.
func (c *Configuration) ConfigDirectory() string {
	return c.configDir
}

// ProjectPluginDirectory returns the plugin directory next to the base file.
func (c *Configuration) ProjectPluginDirectory() string {
	return filepath.Join(c.configDir, ProjectPluginDirName)
}

// PluginDirectory returns the tool-wide plugin directory.
func (c *Configuration) PluginDirectory() string {
	return c.resolver.pluginDir
}

// Format returns the markup format of the base file.
func (c *Configuration) Format() Format {
	return c.format
}

// Document returns a copy of the merged document.
func (c *Configuration) Document() *Document {
	return c.doc.Clone()
}

// Dump renders the merged document in the base file's format.
func (c *Configuration) Dump() (string, error) {
	data, err := c.format.Encode(c.doc.Map())
	if err != nil {
		return "", fmt.Errorf("failed to dump configuration: %w", err)
	}
	return string(data), nil
}

// LoadTimeContext builds a fresh template context for this configuration.
func (c *Configuration) LoadTimeContext() render.Context {
	return render.NewContext(c.resolver.host, render.Dirs{
		WorkDir:          c.WorkDir(),
		ConfigDir:        c.configDir,
		ProjectPluginDir: c.ProjectPluginDirectory(),
		PluginDir:        c.PluginDirectory(),
	})
}

// Get returns the value of s, or its default when it is unset or null.
func (c *Configuration) Get(s Setting) any {
	if v, ok := c.doc.Values(s.Section)[s.Key]; ok && v != nil {
		return cloneValue(v)
	}
	return s.Default
}

// String returns the value of s as a string, "" when unset without default.
func (c *Configuration) String(s Setting) string {
	switch v := c.Get(s).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// BootstrapRepository returns the bootstrap package repository.
func (c *Configuration) BootstrapRepository() string {
	return c.String(SettingBootstrapRepository)
}

// BootstrapArchitecture returns the target architecture.
func (c *Configuration) BootstrapArchitecture() string {
	return c.String(SettingBootstrapArchitecture)
}

// BootstrapTool returns the bootstrap tool, debootstrap by default.
func (c *Configuration) BootstrapTool() string {
	return c.String(SettingBootstrapTool)
}

// BootstrapRepositoryKey returns the signing key of the bootstrap repository.
func (c *Configuration) BootstrapRepositoryKey() string {
	return c.String(SettingBootstrapRepositoryKey)
}

// QemuRepository returns the repository qemu is installed from.
func (c *Configuration) QemuRepository() string {
	return c.String(SettingQemuRepository)
}

// QemuPackageName returns the qemu package, qemu-user-static by default.
func (c *Configuration) QemuPackageName() string {
	return c.String(SettingQemuPackageName)
}

// QemuRepositoryKey returns the signing key of the qemu repository.
func (c *Configuration) QemuRepositoryKey() string {
	return c.String(SettingQemuRepositoryKey)
}

// Compression returns the artifact compression, xz by default.
func (c *Configuration) Compression() string {
	return c.String(SettingCompression)
}

// RequiredVersion returns the minimal edi version the configuration asks
// for, defaulting to the running version.
func (c *Configuration) RequiredVersion() string {
	if required := c.String(SettingRequiredMinimalVersion); required != "" {
		return required
	}
	return c.resolver.version
}

func (c *Configuration) verifyVersion() error {
	return version.Check(c.RequiredVersion(), c.resolver.version)
}

// NodeDictionary returns the variables handed to an item: the load-time
// context, the network interface and management user defaults, and the
// item's own parameters, later entries overriding earlier ones.
func (c *Configuration) NodeDictionary(item Item) map[string]any {
	node := map[string]any(c.LoadTimeContext())
	node[SettingNetworkInterfaceName.Key] = c.Get(SettingNetworkInterfaceName)
	node[SettingManagementUserName.Key] = c.Get(SettingManagementUserName)

	for k, v := range item.Parameters() {
		node[k] = cloneValue(v)
	}
	return node
}

// OrderedPathItems returns the non-skipped items of section sorted by
// name, each with its resolved path and node dictionary.
func (c *Configuration) OrderedPathItems(section Section) ([]PathItem, error) {
	items, err := c.nestedSection(section)
	if err != nil {
		return nil, err
	}

	var out []PathItem
	for _, name := range items.Names() {
		item := items[name]
		if item.Skip() {
			logging.Debug("skipping named item", "section", section, "item", name)
			continue
		}

		path := item.Path()
		if path == "" {
			return nil, errors.MissingPath(string(section), name)
		}
		resolved, err := c.ResolvePath(path)
		if err != nil {
			return nil, err
		}

		out = append(out, PathItem{
			Name: name,
			Path: resolved,
			Node: c.NodeDictionary(item),
		})
	}
	return out, nil
}

// OrderedRawItems is OrderedPathItems for sections whose items are not
// file references: it returns a copy of each record instead of a path.
func (c *Configuration) OrderedRawItems(section Section) ([]RawItem, error) {
	items, err := c.nestedSection(section)
	if err != nil {
		return nil, err
	}

	var out []RawItem
	for _, name := range items.Names() {
		item := items[name]
		if item.Skip() {
			logging.Debug("skipping named item", "section", section, "item", name)
			continue
		}

		out = append(out, RawItem{
			Name:   name,
			Record: Item(cloneMap(item)),
			Node:   c.NodeDictionary(item),
		})
	}
	return out, nil
}

// ResolvePath locates a referenced file. An absolute path must name an
// existing file. A relative path is looked up in the project plugin
// directory and then in the tool-wide plugin directory.
func (c *Configuration) ResolvePath(path string) (string, error) {
	fsys := c.resolver.fs

	if filepath.IsAbs(path) {
		if !fsys.IsFile(path) {
			return "", errors.PathNotFound(path)
		}
		return path, nil
	}

	locations := []string{c.ProjectPluginDirectory(), c.PluginDirectory()}
	for _, location := range locations {
		candidate := filepath.Join(location, path)
		if fsys.IsFile(candidate) {
			return candidate, nil
		}
	}
	return "", errors.PathNotFound(path, locations...)
}

func (c *Configuration) nestedSection(section Section) (Items, error) {
	shape, known := section.Shape()
	if !known {
		return nil, errors.ConfigError(fmt.Sprintf("unknown section '%s'", section), nil)
	}
	if shape != Nested {
		return nil, errors.ConfigError(fmt.Sprintf("section '%s' is not a nested section", section), nil)
	}
	return c.doc.Items(section), nil
}
