package filesystem

import (
	"os"
	"path/filepath"

	"clipfit/domain/video"
)

// TempNamer implements video.TempNamer inside a single directory
type TempNamer struct {
	dir string
}

// NewTempNamer creates a namer rooted at dir, or os.TempDir() when dir is empty
func NewTempNamer(dir string) *TempNamer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempNamer{dir: dir}
}

// Dir returns the directory temp files are placed in
func (n *TempNamer) Dir() string {
	return n.dir
}

// TempPath returns <dir>/<prefix>_<requestID><ext>
func (n *TempNamer) TempPath(prefix, requestID, ext string) string {
	return filepath.Join(n.dir, prefix+"_"+requestID+ext)
}

// Ensure TempNamer implements video.TempNamer
var _ video.TempNamer = (*TempNamer)(nil)
