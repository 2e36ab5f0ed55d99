package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"clipfit/domain/gallery"
)

// Scanner implements gallery.Scanner over a single directory level
type Scanner struct{}

// NewScanner creates a new directory scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan lists the video files directly inside dir, sorted by name
func (s *Scanner) Scan(dir string) ([]gallery.VideoInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var videos []gallery.VideoInfo
	for _, entry := range entries {
		if entry.IsDir() || !gallery.IsVideoFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		videos = append(videos, gallery.VideoInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(videos, func(i, j int) bool { return videos[i].Name < videos[j].Name })
	return videos, nil
}

// Ensure Scanner implements gallery.Scanner
var _ gallery.Scanner = (*Scanner)(nil)
