package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func searchingResolver(wd, exe string) *Resolver {
	r := NewResolver("")
	r.getwd = func() (string, error) { return wd, nil }
	r.executable = func() (string, error) { return exe, nil }
	return r
}

func TestResolve_DataDir(t *testing.T) {
	r := NewResolver("/srv/portal")
	assert.Equal(t, filepath.Join("/srv/portal", "Database.txt"), r.Resolve("Database.txt"))
	assert.Equal(t, "/srv/portal", r.DataDir())
}

func TestResolve_WorkingDirectoryFirst(t *testing.T) {
	root := t.TempDir()
	wd := filepath.Join(root, "wd")
	exeDir := filepath.Join(root, "app", "bin")
	touch(t, filepath.Join(wd, "Database.txt"))
	touch(t, filepath.Join(exeDir, "Database.txt"))

	r := searchingResolver(wd, filepath.Join(exeDir, "portal"))
	assert.Equal(t, filepath.Join(wd, "Database.txt"), r.Resolve("Database.txt"))
}

func TestResolve_WalksUpFromExecutable(t *testing.T) {
	root := t.TempDir()
	wd := filepath.Join(root, "wd")
	require.NoError(t, os.MkdirAll(wd, 0o755))
	exeDir := filepath.Join(root, "project", "out", "production", "bin")
	touch(t, filepath.Join(root, "project", "gradeRecords.txt"))

	r := searchingResolver(wd, filepath.Join(exeDir, "portal"))
	assert.Equal(t, filepath.Join(root, "project", "gradeRecords.txt"), r.Resolve("gradeRecords.txt"))
}

func TestResolve_DepthLimit(t *testing.T) {
	root := t.TempDir()
	wd := filepath.Join(root, "wd")
	require.NoError(t, os.MkdirAll(wd, 0o755))
	touch(t, filepath.Join(root, "far.txt"))

	// nine levels below root: root itself is the tenth directory up
	exeDir := filepath.Join(root, "1", "2", "3", "4", "5", "6", "7", "8", "9")
	require.NoError(t, os.MkdirAll(exeDir, 0o755))

	r := searchingResolver(wd, filepath.Join(exeDir, "portal"))
	assert.Equal(t, filepath.Join(wd, "far.txt"), r.Resolve("far.txt"))
}

func TestResolve_FallbackToWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	r := searchingResolver(root, filepath.Join(root, "bin", "portal"))
	assert.Equal(t, filepath.Join(root, "missing.txt"), r.Resolve("missing.txt"))
}
