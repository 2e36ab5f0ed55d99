package ffmpeg

import (
	"context"

	"clipfit/domain/gallery"
	"clipfit/domain/video"
)

// ThumbnailExtractor implements gallery.Thumbnailer by grabbing one frame with ffmpeg
type ThumbnailExtractor struct {
	opts options
}

// NewThumbnailExtractor creates a new FFmpeg-based thumbnail extractor
func NewThumbnailExtractor(opts ...Option) *ThumbnailExtractor {
	return &ThumbnailExtractor{opts: newOptions(opts)}
}

// Args returns the ffmpeg arguments for a 320px-wide frame at 1s
func (e *ThumbnailExtractor) Args(videoPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-ss", "00:00:01",
		"-vframes", "1",
		"-vf", "scale=320:-1",
		outputPath,
	}
}

// Thumbnail implements gallery.Thumbnailer
func (e *ThumbnailExtractor) Thumbnail(ctx context.Context, videoPath, outputPath string) error {
	return e.opts.run(ctx, video.ErrEncodeFailure, e.opts.ffmpegPath, e.Args(videoPath, outputPath)...)
}

// Ensure ThumbnailExtractor implements gallery.Thumbnailer
var _ gallery.Thumbnailer = (*ThumbnailExtractor)(nil)
