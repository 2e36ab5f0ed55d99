package video

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"clipfit/domain/video"
)

// TrimService coordinates stream-copy trimming into the temp namespace
type TrimService struct {
	trimmer   video.Trimmer
	checker   video.FileChecker
	sizer     video.FileSizer
	namer     video.TempNamer
	extension string
	logger    zerolog.Logger
}

// TrimOption is a functional option for configuring TrimService
type TrimOption func(*TrimService)

// WithExtension sets the container extension of trimmed files; empty keeps the source extension
func WithExtension(ext string) TrimOption {
	return func(s *TrimService) {
		s.extension = ext
	}
}

// WithTrimLogger sets the service logger
func WithTrimLogger(logger zerolog.Logger) TrimOption {
	return func(s *TrimService) {
		s.logger = logger
	}
}

// NewTrimService creates a new TrimService
func NewTrimService(trimmer video.Trimmer, checker video.FileChecker, sizer video.FileSizer, namer video.TempNamer, opts ...TrimOption) *TrimService {
	s := &TrimService{
		trimmer: trimmer,
		checker: checker,
		sizer:   sizer,
		namer:   namer,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TrimInput represents user-entered trim parameters
type TrimInput struct {
	SourcePath string
	StartTime  string
	EndTime    string
}

// ParseInput validates user-entered timestamps and builds a TrimRequest
func ParseInput(input TrimInput) (*video.TrimRequest, error) {
	start, err := video.ParseTimestamp(input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	end, err := video.ParseTimestamp(input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}

	return video.NewTrimRequest(input.SourcePath, start, end)
}

// OutputPath returns the temp path a request's trim is written to
func (s *TrimService) OutputPath(req *video.TrimRequest, requestID string) string {
	ext := s.extension
	if ext == "" {
		ext = filepath.Ext(req.SourcePath)
	}
	return s.namer.TempPath("trimmed", requestID, ext)
}

// Trim cuts req into the temp file for requestID, replacing any earlier output
func (s *TrimService) Trim(ctx context.Context, req *video.TrimRequest, requestID string) (*video.TrimResult, error) {
	if !s.checker.Exists(req.SourcePath) {
		return nil, fmt.Errorf("%w: %s", video.ErrSourceNotFound, req.SourcePath)
	}

	outputPath := s.OutputPath(req, requestID)
	s.logger.Info().
		Str("source", req.SourcePath).
		Str("start", req.Start.String()).
		Str("end", req.End.String()).
		Str("output", outputPath).
		Msg("trimming")

	if err := s.trimmer.Trim(ctx, req, outputPath); err != nil {
		return nil, err
	}

	if !s.checker.Exists(outputPath) {
		return nil, fmt.Errorf("%w: encoder reported success but wrote no file at %s", video.ErrEncodeFailure, outputPath)
	}

	size, err := s.sizer.Size(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrEncodeFailure, err)
	}

	return &video.TrimResult{OutputPath: outputPath, SizeBytes: size}, nil
}
