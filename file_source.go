package fieldz

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource follows a single-value file, such as a hand-edited setting,
// and emits its contents whenever they change.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original
// keep being followed. Trailing line breaks are dropped so that a scalar
// typed into an editor decodes to the value as typed, and a save that leaves
// the contents unchanged emits nothing.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Watch emits the current contents immediately, then again whenever a
// write, create or rename in the parent directory leaves the file with new
// contents. A missing file is an error at start; afterwards a missing or
// unreadable file is skipped until the next event.
func (s *FileSource) Watch(ctx context.Context) (<-chan []byte, error) {
	initial, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", s.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		last := initial
		select {
		case out <- initial:
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				data, err := s.read()
				if err != nil || bytes.Equal(data, last) {
					continue
				}
				last = data
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

// read returns the file contents without trailing line breaks.
func (s *FileSource) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(data, "\r\n"), nil
}
