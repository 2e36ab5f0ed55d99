package ffmpeg

import (
	"context"
	"strconv"

	"clipfit/domain/video"
)

// Compressor implements video.Compressor with a bitrate-targeted re-encode
type Compressor struct {
	opts options
}

// NewCompressor creates a new FFmpeg-based compressor
func NewCompressor(opts ...Option) *Compressor {
	return &Compressor{opts: newOptions(opts)}
}

// Args returns the ffmpeg arguments that apply plan to inputPath
func (c *Compressor) Args(inputPath, outputPath string, plan *video.CompressionPlan) []string {
	s := plan.Settings
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", s.VideoCodec,
		"-b:v", strconv.FormatInt(plan.VideoBitrate, 10),
		"-preset", s.Preset,
		"-c:a", s.AudioCodec,
		"-b:a", s.AudioBitrate,
		outputPath,
	}
}

// Compress implements video.Compressor
func (c *Compressor) Compress(ctx context.Context, inputPath, outputPath string, plan *video.CompressionPlan) error {
	return c.opts.run(ctx, video.ErrCompressFailure, c.opts.ffmpegPath, c.Args(inputPath, outputPath, plan)...)
}

// Ensure Compressor implements video.Compressor
var _ video.Compressor = (*Compressor)(nil)
