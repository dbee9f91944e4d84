package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hazyhaar/revq/review"
)

// File writes each result document to a JSON file. The file is
// rewritten on every Send, so it always holds the latest run.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a File sink writing to path. Parent directories are
// created on first Send.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("sink: file sink requires a path")
	}
	return &File{path: path}, nil
}

func (f *File) Send(_ context.Context, res *review.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sink: mkdir %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: marshal result: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("sink: write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
