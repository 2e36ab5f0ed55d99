package filesystem

import (
	"fmt"
	"os"

	"clipfit/domain/video"
)

// Checker implements video.FileChecker and video.FileSizer using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if a regular file exists at path
func (c *Checker) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Size returns the size of the file in bytes
func (c *Checker) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// Ensure Checker implements video.FileChecker and video.FileSizer
var (
	_ video.FileChecker = (*Checker)(nil)
	_ video.FileSizer   = (*Checker)(nil)
)
