// Package sink persists generated artifacts.
package sink

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/andaru/scpdgen/generr"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// File is a generated artifact: slash separated path and its text
type File struct {
	Path string
	Text string
}

// Sink stores artifact text under a relative path. Parent directories
// are created as needed; existing ones are not an error.
type Sink interface {
	Write(path, text string) error
}

// Flush writes files to s in order, stopping at the first failure
func Flush(s Sink, files []File) error {
	for _, f := range files {
		if err := s.Write(f.Path, f.Text); err != nil {
			return err
		}
	}
	glog.V(1).Infof("wrote %d files", len(files))
	return nil
}

// Dir writes artifacts below a directory
type Dir string

// Write implements Sink
func (d Dir) Write(path, text string) error {
	full := filepath.Join(string(d), filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.WithStack(generr.WriteFailed(full, generr.WithCause(err)))
	}
	if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
		return errors.WithStack(generr.WriteFailed(full, generr.WithCause(err)))
	}
	return nil
}

// Memory keeps artifacts in memory. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	files map[string]string
}

// Write implements Sink
func (m *Memory) Write(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string]string{}
	}
	m.files[path] = text
	return nil
}

// Get returns the text written to path
func (m *Memory) Get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.files[path]
	return text, ok
}

// Paths returns the written paths, sorted
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
