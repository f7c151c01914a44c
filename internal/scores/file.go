package scores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the ranking line in a text file.
type FileBackend struct {
	Path string
}

// NewFileBackend creates a backend for path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// DefaultFilePath returns ~/.quadfall/highscores.txt, or a relative path
// when the home directory is unknown.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "highscores.txt"
	}
	return filepath.Join(home, ".quadfall", "highscores.txt")
}

// Load returns the file content. A missing file is an empty ranking.
func (f *FileBackend) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("scores: cannot read %s: %w", f.Path, err)
	}
	return string(data), nil
}

// Save writes line followed by a newline, creating parent directories.
func (f *FileBackend) Save(line string) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scores: cannot create directory: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, []byte(line+"\n"), 0o644); err != nil {
		return fmt.Errorf("scores: cannot write %s: %w", f.Path, err)
	}
	return nil
}
