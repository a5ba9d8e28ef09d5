package system

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	dirs     map[string]bool
	symlinks map[string]string
	tempSeq  int

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	StatErr      error
	MkdirAllErr  error
	MkdirTempErr error
	RemoveAllErr error
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files:    make(map[string]*mockFile),
		dirs:     make(map[string]bool),
		symlinks: make(map[string]string),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	m.addParents(path)
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	m.addParents(path)
}

// AddSymlink adds a symbolic link at path pointing to target.
func (m *MockFS) AddSymlink(path, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symlinks[path] = target
	m.addParents(path)
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

// Files returns the paths of all regular files.
func (m *MockFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	return paths
}

// addParents must be called with mu held.
func (m *MockFS) addParents(path string) {
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// follow resolves symlinks in the final path component. Must be called with mu held.
func (m *MockFS) follow(path string) string {
	path = filepath.Clean(path)
	for i := 0; i < 40; i++ {
		target, ok := m.symlinks[path]
		if !ok {
			return path
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return path
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[m.follow(path)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	if f.mode&0444 == 0 {
		return nil, fs.ErrPermission
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: perm}
	return nil
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lstat(m.follow(path))
}

func (m *MockFS) Lstat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	if _, ok := m.symlinks[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeSymlink | 0777}, nil
	}
	return m.lstat(path)
}

// lstat must be called with mu held.
func (m *MockFS) lstat(path string) (fs.FileInfo, error) {
	if f, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(f.data)), mode: f.mode}, nil
	}
	if _, ok := m.dirs[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: fs.ModeDir | 0755}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFS) Readlink(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	target, ok := m.symlinks[filepath.Clean(path)]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: syscall.EINVAL}
	}
	return target, nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) MkdirTemp(dir, pattern string) (string, error) {
	if m.MkdirTempErr != nil {
		return "", m.MkdirTempErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tempSeq++
	path := filepath.Join(dir, fmt.Sprintf("%s%d", pattern, m.tempSeq))
	m.dirs[path] = true
	m.addParents(path)
	return path, nil
}

func (m *MockFS) RemoveAll(path string) error {
	if m.RemoveAllErr != nil {
		return m.RemoveAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := range m.files {
		if p == path || hasPathPrefix(p, path) {
			delete(m.files, p)
		}
	}
	for p := range m.dirs {
		if p == path || hasPathPrefix(p, path) {
			delete(m.dirs, p)
		}
	}
	for p := range m.symlinks {
		if p == path || hasPathPrefix(p, path) {
			delete(m.symlinks, p)
		}
	}
	return nil
}

func (m *MockFS) IsFile(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[m.follow(path)]
	return ok
}

// Exists returns true if the path exists as a file, directory or symlink.
func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	_, dirOk := m.dirs[path]
	_, linkOk := m.symlinks[path]
	return fileOk || dirOk || linkOk
}

// hasPathPrefix checks if path has the given prefix as a path component.
func hasPathPrefix(path, prefix string) bool {
	if len(path) <= len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Errors maps command names to the error ExecuteInteractive returns.
	Errors map[string]error

	// Missing lists executables LookPath reports as absent.
	Missing map[string]bool
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
	Env  []string
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands: make([]MockCommand, 0),
		Errors:   make(map[string]error),
		Missing:  make(map[string]bool),
	}
}

// AddError makes every later run of the named command fail with err.
func (m *MockExecutor) AddError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[name] = err
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Missing[file] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, env []string, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args, Env: env})
	return m.Errors[name]
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}

// MockHost implements Host for testing.
type MockHost struct {
	User User
	Name string
	Env  map[string]string
}

// NewMockHost creates a MockHost for the given user and host name.
func NewMockHost(userName, hostname string) *MockHost {
	return &MockHost{
		User: User{
			Name: userName,
			UID:  1000,
			GID:  1000,
			Home: "/home/" + userName,
		},
		Name: hostname,
		Env:  map[string]string{"HOME": "/home/" + userName},
	}
}

func (h *MockHost) CurrentUser() User { return h.User }

func (h *MockHost) Hostname() string { return h.Name }

func (h *MockHost) Getenv(key, fallback string) string {
	if v, ok := h.Env[key]; ok {
		return v
	}
	return fallback
}
