package flatfile

import (
	"os"
	"path/filepath"
)

// DefaultSearchDepth is how many directories, starting with the executable's
// own, are searched for a data file.
const DefaultSearchDepth = 8

// Resolver maps a logical file name onto a physical path. Paths are resolved
// on every call and never cached, so files created while the process runs
// are picked up.
type Resolver struct {
	dataDir    string
	depth      int
	getwd      func() (string, error)
	executable func() (string, error)
}

// NewResolver creates a Resolver. A non-empty dataDir pins every file to that
// directory and disables searching.
func NewResolver(dataDir string) *Resolver {
	return &Resolver{
		dataDir:    dataDir,
		depth:      DefaultSearchDepth,
		getwd:      os.Getwd,
		executable: os.Executable,
	}
}

// DataDir returns the pinned data directory, or "" when searching
func (r *Resolver) DataDir() string {
	return r.dataDir
}

// Resolve returns the path for name:
//  1. dataDir/name when a data directory is configured
//  2. the working directory, if the file exists there
//  3. the executable's directory and up to depth-1 of its parents
//  4. the working directory path, even though the file does not exist
func (r *Resolver) Resolve(name string) string {
	if r.dataDir != "" {
		return filepath.Join(r.dataDir, name)
	}

	wd, err := r.getwd()
	if err != nil {
		wd = "."
	}
	direct := filepath.Join(wd, name)
	if fileExists(direct) {
		return absPath(direct)
	}

	if exe, err := r.executable(); err == nil {
		dir := filepath.Dir(exe)
		for i := 0; i < r.depth; i++ {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return absPath(candidate)
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return absPath(direct)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
