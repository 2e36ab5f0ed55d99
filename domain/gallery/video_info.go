package gallery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// VideoExtensions lists the file extensions the gallery picks up
var VideoExtensions = []string{
	".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".3gp", ".mpg", ".mpeg",
}

// VideoInfo describes one video file in a directory listing
type VideoInfo struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	Thumbnail string // path to a cached thumbnail, "" for the placeholder
}

// FileSizeFormatted returns the size in B/KB/MB/GB/TB/PB with one decimal
func (v VideoInfo) FileSizeFormatted() string {
	return FormatSize(v.Size)
}

// FormatSize renders a byte count with one decimal in the largest unit below 1024
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", size)
}

// IsVideoFile reports whether path has one of the VideoExtensions (case-insensitive)
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// Scanner lists video files in a directory
type Scanner interface {
	Scan(dir string) ([]VideoInfo, error)
}

// Thumbnailer writes a single-frame preview image for a video
type Thumbnailer interface {
	Thumbnail(ctx context.Context, videoPath, outputPath string) error
}
