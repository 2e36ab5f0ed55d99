package video

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"clipfit/domain/video"
)

// SizeFitService re-encodes files that exceed a size ceiling
type SizeFitService struct {
	prober     video.DurationProber
	compressor video.Compressor
	sizer      video.FileSizer
	namer      video.TempNamer
	settings   video.CompressionSettings
	logger     zerolog.Logger
}

// SizeFitOption is a functional option for configuring SizeFitService
type SizeFitOption func(*SizeFitService)

// WithSettings overrides the default compression settings
func WithSettings(settings video.CompressionSettings) SizeFitOption {
	return func(s *SizeFitService) {
		s.settings = settings
	}
}

// WithSizeFitLogger sets the service logger
func WithSizeFitLogger(logger zerolog.Logger) SizeFitOption {
	return func(s *SizeFitService) {
		s.logger = logger
	}
}

// NewSizeFitService creates a new SizeFitService
func NewSizeFitService(prober video.DurationProber, compressor video.Compressor, sizer video.FileSizer, namer video.TempNamer, opts ...SizeFitOption) *SizeFitService {
	s := &SizeFitService{
		prober:     prober,
		compressor: compressor,
		sizer:      sizer,
		namer:      namer,
		settings:   video.DefaultCompressionSettings(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckSize reports the file size and whether it is within maxSizeBytes
// A ceiling of zero or less means no limit
func (s *SizeFitService) CheckSize(path string, maxSizeBytes int64) (int64, bool, error) {
	size, err := s.sizer.Size(path)
	if err != nil {
		return 0, false, err
	}
	return size, maxSizeBytes <= 0 || size <= maxSizeBytes, nil
}

// Plan probes inputPath and derives the compression plan for maxSizeBytes
func (s *SizeFitService) Plan(ctx context.Context, inputPath string, maxSizeBytes int64) (*video.CompressionPlan, error) {
	duration, err := s.prober.ProbeDuration(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", video.ErrDurationUnknown, err)
	}
	return video.NewCompressionPlan(duration, maxSizeBytes, s.settings)
}

// Compress unconditionally re-encodes inputPath toward maxSizeBytes
func (s *SizeFitService) Compress(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error) {
	plan, err := s.Plan(ctx, inputPath, maxSizeBytes)
	if err != nil {
		return nil, err
	}

	outputPath := s.namer.TempPath("compressed", requestID, filepath.Ext(inputPath))
	s.logger.Info().
		Str("input", inputPath).
		Int64("bitrate", plan.VideoBitrate).
		Float64("duration", plan.DurationSeconds).
		Msg("compressing")

	if err := s.compressor.Compress(ctx, inputPath, outputPath, plan); err != nil {
		return nil, err
	}

	size, err := s.sizer.Size(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrCompressFailure, err)
	}
	if size > maxSizeBytes {
		s.logger.Warn().
			Int64("size", size).
			Int64("ceiling", maxSizeBytes).
			Msg("compressed output still exceeds ceiling")
	}

	return &video.FitOutcome{Path: outputPath, SizeBytes: size, WasCompressed: true}, nil
}

// FitToSize returns inputPath untouched when it fits, otherwise a compressed copy
func (s *SizeFitService) FitToSize(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error) {
	size, fits, err := s.CheckSize(inputPath, maxSizeBytes)
	if err != nil {
		return nil, err
	}
	if fits {
		return &video.FitOutcome{Path: inputPath, SizeBytes: size}, nil
	}

	s.logger.Info().
		Str("size", fmt.Sprintf("%.1fMB", video.BytesToMegabytes(size))).
		Str("ceiling", fmt.Sprintf("%.1fMB", video.BytesToMegabytes(maxSizeBytes))).
		Msg("file exceeds ceiling")
	return s.Compress(ctx, inputPath, maxSizeBytes, requestID)
}
