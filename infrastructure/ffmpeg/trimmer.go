package ffmpeg

import (
	"context"

	"clipfit/domain/video"
)

// Trimmer implements video.Trimmer using ffmpeg stream copy
type Trimmer struct {
	opts options
}

// NewTrimmer creates a new FFmpeg-based trimmer
func NewTrimmer(opts ...Option) *Trimmer {
	return &Trimmer{opts: newOptions(opts)}
}

// Args returns the ffmpeg arguments used to trim req into outputPath
func (t *Trimmer) Args(req *video.TrimRequest, outputPath string) []string {
	return []string{
		"-y", // Overwrite output file if it exists
		"-i", req.SourcePath,
		"-ss", video.FormatSeconds(req.StartSeconds()),
		"-t", video.FormatSeconds(req.DurationSeconds()),
		"-c", "copy",
		outputPath,
	}
}

// Trim implements video.Trimmer
func (t *Trimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	return t.opts.run(ctx, video.ErrEncodeFailure, t.opts.ffmpegPath, t.Args(req, outputPath)...)
}

// VerifyInstalled checks that ffmpeg is available
func (t *Trimmer) VerifyInstalled(ctx context.Context) error {
	return t.opts.verify(ctx, t.opts.ffmpegPath)
}

// Ensure Trimmer implements video.Trimmer
var _ video.Trimmer = (*Trimmer)(nil)
