package provision

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the per-user directory the helper is installed into.
	DefaultDirName = "hu.lakospeter.appleremote4j"

	// DefaultHelperName is the file name of the helper executable.
	DefaultHelperName = "iremotepipe"

	helperPerm = 0o755
)

// Config locates the helper executable.
type Config struct {
	// Dir holds the helper. Empty means DefaultDirName inside the user config
	// directory (~/Library/Application Support on macOS).
	Dir  string `env:"APPLEREMOTE_HELPER_DIR"`
	Name string `env:"APPLEREMOTE_HELPER_NAME" envDefault:"iremotepipe"`
}

// Path resolves the absolute helper path described by the config.
func (c Config) Path() (string, error) {
	name := c.Name
	if name == "" {
		name = DefaultHelperName
	}

	dir := c.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		dir = filepath.Join(base, DefaultDirName)
	}
	return filepath.Join(dir, name), nil
}

// DefaultPath returns the helper location used when nothing is configured.
func DefaultPath() (string, error) {
	return Config{}.Path()
}

// Verify checks that path names an executable regular file.
// Returned errors wrap ErrHelperMissing, ErrNotRegularFile or ErrNotExecutable.
func Verify(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrHelperMissing, path)
		}
		return fmt.Errorf("failed to stat helper %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrNotExecutable, path)
	}
	return nil
}

// Install writes the helper from src to path and marks it executable.
// Parent directories are created as needed. The file is written to a temporary
// name first and renamed into place, so a concurrent Verify never sees a partial file.
func Install(path string, src io.Reader) error {
	if path == "" {
		return ErrEmptyPath
	}
	if src == nil {
		return ErrNoSource
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, helperPerm); err != nil {
		return fmt.Errorf("failed to create helper directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary helper file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write helper: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write helper: %w", err)
	}
	if err := os.Chmod(tmpName, helperPerm); err != nil {
		return fmt.Errorf("failed to make helper executable: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move helper into place: %w", err)
	}
	return nil
}

// Source opens the bundled helper binary, e.g. from an embed.FS.
type Source func() (io.ReadCloser, error)

// FromFS returns a Source that opens name inside fsys.
//
// Example:
//
//	//go:embed bin/iremotepipe
//	var bundle embed.FS
//
//	src := provision.FromFS(bundle, "bin/iremotepipe")
func FromFS(fsys fs.FS, name string) Source {
	return func() (io.ReadCloser, error) {
		return fsys.Open(name)
	}
}

// Ensure installs the helper from src when path does not hold an executable yet.
// A missing file is installed; an existing file without execute permission is
// made executable. Ensure reports whether anything was changed on disk.
func Ensure(path string, src Source) (bool, error) {
	err := Verify(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrNotExecutable):
		if err := os.Chmod(path, helperPerm); err != nil {
			return false, fmt.Errorf("failed to make helper executable: %w", err)
		}
		return true, nil
	case errors.Is(err, ErrHelperMissing):
		if src == nil {
			return false, fmt.Errorf("%w: %w", ErrNoSource, err)
		}
		rc, err := src()
		if err != nil {
			return false, fmt.Errorf("failed to open helper source: %w", err)
		}
		defer rc.Close()
		if err := Install(path, rc); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Ensurer adapts Ensure to the func(path) error shape expected by remote.WithProvisioner.
func Ensurer(src Source) func(string) error {
	return func(path string) error {
		_, err := Ensure(path, src)
		return err
	}
}
