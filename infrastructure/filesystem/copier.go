package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"clipfit/domain/claim"
)

// Copier implements claim.FileCopier, preserving mode and modification time
type Copier struct{}

// NewCopier creates a new file copier
func NewCopier() *Copier {
	return &Copier{}
}

// Copy copies src to dst, replacing dst if it exists
// Copying a file onto itself is a no-op
func (c *Copier) Copy(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", claim.ErrDestinationWrite, dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return nil
	}

	// dst is only replaced once the full copy is on disk
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	return os.Rename(tmpPath, dst)
}

// Ensure Copier implements claim.FileCopier
var _ claim.FileCopier = (*Copier)(nil)
