package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edi-build/edi/internal/errors"
	"github.com/edi-build/edi/internal/logging"
	"github.com/edi-build/edi/internal/render"
	"github.com/edi-build/edi/internal/system"
	"github.com/edi-build/edi/internal/version"
)

const (
	// DefaultPluginDir is the tool-wide plugin directory.
	DefaultPluginDir = "/usr/share/edi/plugins"

	// ProjectPluginDirName is the plugin directory next to a base configuration.
	ProjectPluginDirName = "plugins"
)

// Resolver loads base configurations, folds their overlays and caches
// the result in its Store.
type Resolver struct {
	fs        system.FileSystem
	host      system.Host
	store     *Store
	renderer  *render.Renderer
	version   string
	pluginDir string
	workDir   string
}

// Option is a function that configures the Resolver
type Option func(*Resolver)

// WithFS sets the file system
func WithFS(fs system.FileSystem) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithHost sets the user and host lookups
func WithHost(h system.Host) Option {
	return func(r *Resolver) {
		r.host = h
	}
}

// WithStore sets the document cache
func WithStore(s *Store) Option {
	return func(r *Resolver) {
		r.store = s
	}
}

// WithVersion sets the running edi version used by the version gate
func WithVersion(v string) Option {
	return func(r *Resolver) {
		r.version = v
	}
}

// WithPluginDir sets the tool-wide plugin directory
func WithPluginDir(dir string) Option {
	return func(r *Resolver) {
		r.pluginDir = dir
	}
}

// WithWorkDir sets the work directory
func WithWorkDir(dir string) Option {
	return func(r *Resolver) {
		r.workDir = dir
	}
}

// NewResolver creates a Resolver. Without options it uses the real OS, a
// private Store, the running version and DefaultPluginDir.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fs:        system.DefaultFS(),
		host:      system.DefaultHost(),
		renderer:  render.NewRenderer(),
		version:   version.Version,
		pluginDir: DefaultPluginDir,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		r.store = NewStore()
	}
	if r.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			r.workDir = wd
		}
	}
	r.pluginDir = filepath.Clean(r.pluginDir)

	return r
}

// Store returns the resolver's document cache.
func (r *Resolver) Store() *Store {
	return r.store
}

// Load resolves the configuration rooted at baseFile. The first Load of an
// identity reads and folds the files; later loads reuse the cached
// document. The version gate runs on every Load.
func (r *Resolver) Load(baseFile string) (*Configuration, error) {
	abs, err := filepath.Abs(baseFile)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid configuration file %s", baseFile), err)
	}

	name := filepath.Base(abs)
	ext := filepath.Ext(name)

	c := &Configuration{
		id:        strings.TrimSuffix(name, ext),
		configDir: filepath.Dir(abs),
		format:    FormatFor(name),
		resolver:  r,
	}

	doc, cached, err := r.store.Resolve(c.id, func() (*Document, error) {
		return r.resolve(c, abs)
	})
	if err != nil {
		return nil, err
	}
	if cached {
		logging.Debug("using cached configuration", "project", c.id)
	}
	c.doc = doc

	if err := c.verifyVersion(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolve reads the base file and its overlays and folds them as
// base < global < host < user.
func (r *Resolver) resolve(c *Configuration, basePath string) (*Document, error) {
	if logging.DebugEnabled() {
		logging.Debug("load time context", "context", yamlString(map[string]any(c.LoadTimeContext())))
	}
	logging.Info("using base configuration file", "path", basePath)

	data, err := r.fs.ReadFile(basePath)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read configuration file %s", basePath), err)
	}
	base, err := r.parse(c, basePath, data)
	if err != nil {
		return nil, err
	}

	user := r.host.CurrentUser()
	discriminators := []string{OverlayGlobal, r.host.Hostname(), user.Name}

	layers := make([]*Document, 0, len(discriminators))
	for _, d := range discriminators {
		overlay, err := r.loadOverlay(c, basePath, d)
		if err != nil {
			return nil, err
		}
		layers = append(layers, overlay)
	}

	merged := Fold(base, layers...)
	if logging.DebugEnabled() {
		logging.Debug("merged configuration", "project", c.id, "configuration", yamlString(merged.Map()))
	}
	return merged, nil
}

// loadOverlay returns the overlay document for discriminator. A missing or
// unreadable overlay is an empty document; one that exists but does not
// render or parse is an error.
func (r *Resolver) loadOverlay(c *Configuration, basePath, discriminator string) (*Document, error) {
	path, ok := LocateOverlay(r.fs, basePath, discriminator)
	if !ok {
		return NewDocument(), nil
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		logging.Warn("ignoring unreadable overlay configuration file", "path", path, "error", err)
		return NewDocument(), nil
	}

	logging.Info("using overlay configuration file", "path", path)
	return r.parse(c, path, data)
}

// parse renders data and decodes the result. The two stages fail with
// different error codes.
func (r *Resolver) parse(c *Configuration, path string, data []byte) (*Document, error) {
	rendered, err := r.renderer.Render(path, string(data), c.LoadTimeContext())
	if err != nil {
		return nil, err
	}

	raw, err := FormatFor(path).Decode([]byte(rendered))
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	return FromMap(raw)
}

func yamlString(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
