package deeplink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the current link to a file, replacing it on every write
// the way history.replaceState replaces the address bar. A zero path
// keeps the link in memory only.
type Store struct {
	mu      sync.Mutex
	path    string
	current string
	synced  bool // current matches the file
	onError func(error)
}

// NewStore returns a store backed by path. onError receives write
// failures; it may be nil.
func NewStore(path string, onError func(error)) *Store {
	return &Store{path: path, onError: onError}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Replace records link as the current location.
func (s *Store) Replace(link Link) {
	s.write(link.Encode())
}

// Clear removes the current location.
func (s *Store) Clear() {
	s.write("")
}

// Current returns the last written query ("" when cleared).
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Load reads the persisted query from disk. A missing file is an empty
// location, not an error.
func (s *Store) Load() (string, error) {
	if s.path == "" {
		return s.Current(), nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read location: %w", err)
	}
	q := strings.TrimSpace(string(data))
	s.mu.Lock()
	s.current = q
	s.synced = true
	s.mu.Unlock()
	return q, nil
}

func (s *Store) write(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.synced && q == s.current {
		return
	}
	s.current = q

	if s.path == "" {
		s.synced = true
		return
	}
	if err := writeAtomic(s.path, []byte(q+"\n")); err != nil {
		s.synced = false
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.synced = true
}

// writeAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create location dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".location-*")
	if err != nil {
		return fmt.Errorf("create temp location: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write location: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close location: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename location: %w", err)
	}
	return nil
}
