package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yigit/isluportal/internal/pkg/logger"
)

// Store reads and writes newline-delimited text files. Lines are handed to
// callers exactly as stored, minus the terminating "\n" or "\r\n". Writes keep
// the line ending the file already uses, so a rewrite puts untouched lines
// back byte for byte.
//
// Writers are serialised per file inside one process. Nothing guards against
// another process editing the same files.
type Store struct {
	resolver *Resolver

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewStore creates a Store on top of the given Resolver
func NewStore(resolver *Resolver) *Store {
	return &Store{
		resolver: resolver,
		locks:    make(map[string]*sync.RWMutex),
	}
}

// Path returns the physical path currently backing name
func (s *Store) Path(name string) string {
	return s.resolver.Resolve(name)
}

// Exists reports whether the file backing name is present
func (s *Store) Exists(name string) bool {
	return fileExists(s.Path(name))
}

func (s *Store) lockFor(path string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[path]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[path] = l
	}
	return l
}

// ReadLines returns every line of the file in order. A missing file yields an
// empty result and no error.
func (s *Store) ReadLines(ctx context.Context, name string) ([]string, error) {
	var lines []string
	err := s.Scan(ctx, name, func(_ int, line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// Scan calls fn for every line of the file with its 1-based line number.
// Scanning stops at the first error returned by fn.
func (s *Store) Scan(ctx context.Context, name string, fn func(lineNo int, line string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(name)
	l := s.lockFor(path)
	l.RLock()
	defer l.RUnlock()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("Data file not found, treating as empty")
			return nil
		}
		logger.Error().Err(err).Str("path", path).Msg("Failed to open data file")
		return fmt.Errorf("flatfile: open %s: %w", name, err)
	}
	defer file.Close()

	_, err = scanLines(file, fn)
	return err
}

const (
	lf   = "\n"
	crlf = "\r\n"
)

// scanLines feeds fn every line without its terminator and reports the
// terminator of the first terminated line, "\n" when there is none.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) (string, error) {
	reader := bufio.NewReader(r)
	eol := ""
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if strings.HasSuffix(line, crlf) {
				line = strings.TrimSuffix(line, crlf)
				if eol == "" {
					eol = crlf
				}
			} else if strings.HasSuffix(line, lf) {
				line = strings.TrimSuffix(line, lf)
				if eol == "" {
					eol = lf
				}
			}
			if ferr := fn(lineNo, line); ferr != nil {
				return eol, ferr
			}
		}
		if err != nil {
			if eol == "" {
				eol = lf
			}
			if errors.Is(err, io.EOF) {
				return eol, nil
			}
			return eol, fmt.Errorf("flatfile: read line %d: %w", lineNo+1, err)
		}
	}
}

// Append writes one line to the end of the file, creating it when needed, and
// syncs before returning.
func (s *Store) Append(ctx context.Context, name, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("flatfile: line for %s contains a line break", name)
	}

	path := s.Path(name)
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("flatfile: create directory for %s: %w", name, err)
	}

	prefix, eol, err := appendLayout(path)
	if err != nil {
		return fmt.Errorf("flatfile: inspect %s: %w", name, err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to open data file for append")
		return fmt.Errorf("flatfile: open %s: %w", name, err)
	}

	if _, err := file.WriteString(prefix + line + eol); err != nil {
		file.Close()
		return fmt.Errorf("flatfile: append to %s: %w", name, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("flatfile: sync %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("flatfile: close %s: %w", name, err)
	}

	logger.Debug().Str("path", path).Msg("Line appended")
	return nil
}

// appendLayout inspects the tail of the file. The returned prefix starts a
// new line when the last one is unterminated, and eol is "\r\n" when the file
// already ends that way.
func appendLayout(path string) (prefix, eol string, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", lf, nil
		}
		return "", "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", "", err
	}
	size := info.Size()
	if size == 0 {
		return "", lf, nil
	}

	n := min(size, 2)
	tail := make([]byte, n)
	if _, err := file.ReadAt(tail, size-n); err != nil {
		return "", "", err
	}
	switch {
	case string(tail) == crlf:
		return "", crlf, nil
	case tail[n-1] == '\n':
		return "", lf, nil
	}
	return lf, lf, nil
}

// Rewrite replaces the content of the file with the lines returned by fn,
// which receives the current lines (nil for a missing file). The new content
// goes to a temporary file in the same directory that is then renamed over
// the original, so readers never observe a half-written file.
func (s *Store) Rewrite(ctx context.Context, name string, fn func(lines []string) ([]string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(name)
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()

	var current []string
	mode := fs.FileMode(0o644)
	eol := lf

	file, err := os.Open(path)
	switch {
	case err == nil:
		if info, statErr := file.Stat(); statErr == nil {
			mode = info.Mode().Perm()
		}
		eol, err = scanLines(file, func(_ int, line string) error {
			current = append(current, line)
			return nil
		})
		file.Close()
		if err != nil {
			return fmt.Errorf("flatfile: read %s: %w", name, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("flatfile: open %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if err := writeAtomic(path, next, eol, mode); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to rewrite data file")
		return fmt.Errorf("flatfile: rewrite %s: %w", name, err)
	}

	logger.Debug().Str("path", path).Int("lines", len(next)).Msg("Data file rewritten")
	return nil
}

// Replace overwrites the file with lines regardless of its current content
func (s *Store) Replace(ctx context.Context, name string, lines []string) error {
	return s.Rewrite(ctx, name, func([]string) ([]string, error) {
		return lines, nil
	})
}

func writeAtomic(path string, lines []string, eol string, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + eol); err != nil {
			tmp.Close()
			cleanup()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
