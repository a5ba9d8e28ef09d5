package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/edi-build/edi/internal/logging"
	"github.com/edi-build/edi/internal/system"
)

// OverlayGlobal is the discriminator of the environment-wide overlay.
const OverlayGlobal = "global"

// OverlayDir returns the overlay directory belonging to configDir.
func OverlayDir(configDir string) string {
	return filepath.Join(configDir, "configuration", "overlay")
}

// lexicalVFS reports every path as missing, so securejoin resolves ".."
// purely by name and never looks at the file system.
type lexicalVFS struct{}

func (lexicalVFS) Lstat(name string) (os.FileInfo, error) {
	return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
}

func (lexicalVFS) Readlink(name string) (string, error) {
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrNotExist}
}

// OverlayPath returns where the overlay for discriminator lives:
// <configDir>/configuration/overlay/<stem>.<discriminator><ext>.
// A discriminator whose name would leave the overlay directory is an
// error. The file itself may be a symlink to anywhere.
func OverlayPath(configDir, stem, ext, discriminator string) (string, error) {
	dir := OverlayDir(configDir)
	name := stem + "." + discriminator + ext

	path := filepath.Join(dir, name)
	confined, err := securejoin.SecureJoinVFS(dir, name, lexicalVFS{})
	if err != nil {
		return "", err
	}
	if confined != path {
		return "", fmt.Errorf("overlay name %q leaves %s", name, dir)
	}
	return path, nil
}

// LocateOverlay finds the optional overlay of basePath for discriminator.
// It returns false when there is no such regular file, symlinks followed;
// overlays are opt-in so this is never an error.
func LocateOverlay(fsys system.FileSystem, basePath, discriminator string) (string, bool) {
	if discriminator == "" {
		return "", false
	}

	name := filepath.Base(basePath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	path, err := OverlayPath(filepath.Dir(basePath), stem, ext, discriminator)
	if err != nil {
		logging.Warn("ignoring overlay discriminator", "discriminator", discriminator, "error", err)
		return "", false
	}
	if !fsys.IsFile(path) {
		return "", false
	}
	return path, true
}
