package provision_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakospeter91/appleremote/core/provision"
)

func TestConfig_Path(t *testing.T) {
	t.Parallel()

	t.Run("explicit directory and name", func(t *testing.T) {
		t.Parallel()

		path, err := provision.Config{Dir: "/opt/remote", Name: "pipe"}.Path()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/opt/remote", "pipe"), path)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		base, err := os.UserConfigDir()
		if err != nil {
			t.Skip("no user config directory:", err)
		}

		path, err := provision.DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, provision.DefaultDirName, provision.DefaultHelperName), path)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	exe := filepath.Join(dir, "exe")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o644))

	assert.NoError(t, provision.Verify(exe))
	assert.ErrorIs(t, provision.Verify(plain), provision.ErrNotExecutable)
	assert.ErrorIs(t, provision.Verify(dir), provision.ErrNotRegularFile)
	assert.ErrorIs(t, provision.Verify(filepath.Join(dir, "missing")), provision.ErrHelperMissing)
	assert.ErrorIs(t, provision.Verify(""), provision.ErrEmptyPath)
}

func TestInstall(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", provision.DefaultHelperName)

	require.NoError(t, provision.Install(path, strings.NewReader("#!/bin/sh\nexit 0\n")))
	require.NoError(t, provision.Verify(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nexit 0\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	assert.ErrorIs(t, provision.Install("", strings.NewReader("")), provision.ErrEmptyPath)
	assert.ErrorIs(t, provision.Install(path, nil), provision.ErrNoSource)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestInstall_SourceFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, provision.DefaultHelperName)

	assert.Error(t, provision.Install(path, failingReader{}))
	assert.ErrorIs(t, provision.Verify(path), provision.ErrHelperMissing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	bundle := fstest.MapFS{
		"bin/iremotepipe": &fstest.MapFile{Data: []byte("#!/bin/sh\n")},
	}

	t.Run("installs missing helper", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), provision.DefaultDirName, provision.DefaultHelperName)

		changed, err := provision.Ensure(path, provision.FromFS(bundle, "bin/iremotepipe"))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.NoError(t, provision.Verify(path))

		changed, err = provision.Ensure(path, provision.FromFS(bundle, "bin/iremotepipe"))
		require.NoError(t, err)
		assert.False(t, changed, "existing helper is left alone")
	})

	t.Run("fixes permissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), provision.DefaultHelperName)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))

		changed, err := provision.Ensure(path, nil)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.NoError(t, provision.Verify(path))
	})

	t.Run("missing without source", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), provision.DefaultHelperName)

		_, err := provision.Ensure(path, nil)
		assert.ErrorIs(t, err, provision.ErrNoSource)
		assert.ErrorIs(t, err, provision.ErrHelperMissing)
	})

	t.Run("source open failure", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), provision.DefaultHelperName)

		_, err := provision.Ensure(path, provision.FromFS(bundle, "bin/missing"))
		assert.Error(t, err)
	})

	t.Run("directory in the way", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()
		_, err := provision.Ensure(path, func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("")), nil
		})
		assert.ErrorIs(t, err, provision.ErrNotRegularFile)
	})

	t.Run("ensurer adapter", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), provision.DefaultHelperName)
		require.NoError(t, provision.Ensurer(provision.FromFS(bundle, "bin/iremotepipe"))(path))
		assert.NoError(t, provision.Verify(path))
	})
}
